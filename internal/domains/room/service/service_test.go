package service_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roombook/config"
	"roombook/infras/otel/mocks"
	s3Mocks "roombook/infras/s3/mocks"
	roomMocks "roombook/internal/domains/room/mocks"
	"roombook/internal/domains/room/model"
	"roombook/internal/domains/room/model/dto"
	"roombook/internal/domains/room/service"
	cacheMocks "roombook/shared/cache/mocks"
	"roombook/shared/constant"
	"roombook/shared/failure"
)

const (
	testAdminID = "5b1f0de2-74c8-45d9-9a38-6cf0f1b2a901"
	testBucket  = "roombook-media"

	// "hello" as a png data URI, enough to drive the upload path.
	testImageURI = "data:image/png;base64,aGVsbG8="
)

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, testAdminID)
}

func newService(t *testing.T) (service.Room, *roomMocks.MockRoom, *s3Mocks.MockS3, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.External.S3.BucketName = testBucket

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel(), mockS3)

	// Cache invalidation runs asynchronously after writes; it may or may
	// not fire before the test ends.
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return svc, mockRepo, mockS3, mockCache
}

func existingRoom() model.Room {
	return model.Room{
		ID:           "8c9d5f8e-30a1-4f0b-a7c3-2b6a4cf4a111",
		Name:         "Boardroom A",
		Type:         "Meeting",
		Capacity:     8,
		Location:     "3rd floor",
		Description:  "Glass-walled meeting room.",
		PricePerHour: 1500,
		Images:       pq.StringArray{"https://cdn.example.com/room/old.png"},
		IsAvailable:  true,
	}
}

func createRequest(images ...string) dto.CreateRoomRequest {
	return dto.CreateRoomRequest{
		Name:         "Boardroom A",
		Type:         "Meeting",
		Capacity:     8,
		Location:     "3rd floor",
		Description:  "Glass-walled meeting room.",
		Facilities:   []string{"Whiteboard", "Projector"},
		PricePerHour: 1500,
		Images:       images,
	}
}

func TestRoomService_Create(t *testing.T) {
	t.Run("uploads images and persists the room", func(t *testing.T) {
		svc, mockRepo, mockS3, _ := newService(t)

		mockS3.EXPECT().
			UploadFileBytes(gomock.Any(), testBucket, model.EntityName, gomock.Any(), "image/png", []byte("hello")).
			DoAndReturn(func(_ context.Context, _, _, filename, _ string, _ []byte) (string, error) {
				assert.True(t, strings.HasSuffix(filename, ".png"))

				return "https://cdn.example.com/room/" + filename, nil
			})

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, room model.Room) error {
				assert.Equal(t, testAdminID, room.CreatedBy)
				assert.True(t, room.IsAvailable)
				require.Len(t, room.Images, 1)
				assert.Contains(t, room.Images[0], "https://cdn.example.com/room/")

				return nil
			})

		res, err := svc.Create(testContext(), createRequest(testImageURI))

		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "Boardroom A", res.Name)
		require.Len(t, res.Images, 1)
	})

	t.Run("invalid image payload is rejected", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.Create(testContext(), createRequest("data:image/png;base64,%%%not-base64%%%"))

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})

		_, err := svc.Create(testContext(), createRequest())

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("uploaded objects are removed when the insert fails", func(t *testing.T) {
		svc, mockRepo, mockS3, _ := newService(t)

		var uploaded string

		mockS3.EXPECT().
			UploadFileBytes(gomock.Any(), testBucket, model.EntityName, gomock.Any(), "image/png", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, filename, _ string, _ []byte) (string, error) {
				uploaded = filename

				return "https://cdn.example.com/room/" + filename, nil
			})

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(assert.AnError)

		mockS3.EXPECT().
			DeleteFile(gomock.Any(), testBucket, model.EntityName, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, objectName string) error {
				assert.Equal(t, uploaded, objectName)

				return nil
			})

		_, err := svc.Create(testContext(), createRequest(testImageURI))

		require.Error(t, err)
	})
}

func TestRoomService_Get(t *testing.T) {
	t.Run("returns the room", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(assert.AnError)
		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existingRoom(), nil)

		res, err := svc.Get(testContext(), existingRoom().ID)

		require.NoError(t, err)
		assert.Equal(t, "Boardroom A", res.Name)
		assert.Equal(t, int64(1500), res.PricePerHour)
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(assert.AnError)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		_, err := svc.Get(testContext(), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Update(t *testing.T) {
	t.Run("replacing images drops the old objects", func(t *testing.T) {
		svc, mockRepo, mockS3, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existingRoom(), nil)

		mockS3.EXPECT().
			UploadFileBytes(gomock.Any(), testBucket, model.EntityName, gomock.Any(), "image/png", gomock.Any()).
			Return("https://cdn.example.com/room/new.png", nil)

		available := false

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				assert.Equal(t, pq.StringArray{"https://cdn.example.com/room/new.png"}, req[model.FieldImages])
				assert.Equal(t, false, req[model.FieldIsAvailable])
				assert.Equal(t, testAdminID, req[constant.FieldModifiedBy])

				return nil
			})

		mockS3.EXPECT().
			GetObjectNameFromURL(testBucket, "https://cdn.example.com/room/old.png").
			Return("old.png")
		mockS3.EXPECT().
			DeleteFile(gomock.Any(), testBucket, model.EntityName, "old.png").
			Return(nil)

		err := svc.Update(testContext(), dto.UpdateRoomRequest{
			Images:      []string{testImageURI},
			IsAvailable: &available,
		}, existingRoom().ID)

		require.NoError(t, err)
	})

	t.Run("keeps current images when none are sent", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existingRoom(), nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				assert.Equal(t, "Boardroom B", req[model.FieldName])
				assert.NotContains(t, req, model.FieldImages)

				return nil
			})

		err := svc.Update(testContext(), dto.UpdateRoomRequest{Name: "Boardroom B"}, existingRoom().ID)

		require.NoError(t, err)
	})

	t.Run("renaming onto an existing name is rejected", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existingRoom(), nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})

		err := svc.Update(testContext(), dto.UpdateRoomRequest{Name: "Boardroom B"}, existingRoom().ID)

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		err := svc.Update(testContext(), dto.UpdateRoomRequest{Name: "Boardroom B"}, "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("deletes the room and its images", func(t *testing.T) {
		svc, mockRepo, mockS3, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existingRoom(), nil)
		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		mockS3.EXPECT().
			GetObjectNameFromURL(testBucket, "https://cdn.example.com/room/old.png").
			Return("old.png")
		mockS3.EXPECT().
			DeleteFile(gomock.Any(), testBucket, model.EntityName, "old.png").
			Return(nil)

		err := svc.Delete(testContext(), existingRoom().ID)

		require.NoError(t, err)
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		err := svc.Delete(testContext(), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
