package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roombook/config"
	"roombook/infras/otel/mocks"
	reviewMocks "roombook/internal/domains/review/mocks"
	"roombook/internal/domains/review/model"
	"roombook/internal/domains/review/model/dto"
	"roombook/internal/domains/review/service"
	roomMocks "roombook/internal/domains/room/mocks"
	cacheMocks "roombook/shared/cache/mocks"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
)

const testUserID = "3f2ea89c-9361-4a1c-a762-b33d28f4e31a"

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)
}

func newService(t *testing.T) (service.Review, *reviewMocks.MockReview, *roomMocks.MockRoom, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockRoomRepo, &config.Config{}, mockCache, mockOtel)

	return svc, mockRepo, mockRoomRepo, mockCache
}

func TestReviewService_Create(t *testing.T) {
	svc, mockRepo, mockRoomRepo, mockCache := newService(t)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	req := dto.CreateReviewRequest{
		RoomID:  "8c9d5f8e-30a1-4f0b-a7c3-2b6a4cf4a111",
		Rating:  4,
		Comment: "Great acoustics.",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "new review starts unapproved",
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, review model.Review) error {
						assert.False(t, review.IsApproved)
						assert.Equal(t, testUserID, review.UserID)

						return nil
					})
			},
		},
		{
			name: "room does not exist",
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "second review of the same room",
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(testContext(), req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.False(t, res.IsApproved)
			assert.Equal(t, req.Rating, res.Rating)
		})
	}
}

func TestReviewService_Update(t *testing.T) {
	svc, mockRepo, _, mockCache := newService(t)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		req       dto.UpdateReviewRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "edit resets approval",
			req:  dto.UpdateReviewRequest{Comment: "Edited comment."},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, false, req[model.FieldIsApproved])

						return nil
					})
			},
		},
		{
			name:      "empty update rejected",
			req:       dto.UpdateReviewRequest{},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "review owned by someone else",
			req:  dto.UpdateReviewRequest{Comment: "Edited comment."},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(testContext(), tt.req, "review-id")

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestReviewService_Approve(t *testing.T) {
	svc, mockRepo, _, mockCache := newService(t)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	t.Run("approves a pending review", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, true, req[model.FieldIsApproved])

				return nil
			})

		require.NoError(t, svc.Approve(testContext(), "review-id"))
	})

	t.Run("unknown review", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Approve(testContext(), "missing-id")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReviewService_Delete(t *testing.T) {
	svc, mockRepo, _, mockCache := newService(t)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	t.Run("deletes own review", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		require.NoError(t, svc.Delete(testContext(), "review-id"))
	})

	t.Run("someone else's review reads as missing", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(testContext(), "review-id")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
