package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"carshare/config"
	"carshare/infras/otel/mocks"
	s3Mocks "carshare/infras/s3/mocks"
	resourceMocks "carshare/internal/domains/resource/mocks"
	"carshare/internal/domains/resource/model"
	"carshare/internal/domains/resource/model/dto"
	"carshare/internal/domains/resource/service"
	"carshare/shared/cache"
	cacheMocks "carshare/shared/cache/mocks"
	"carshare/shared/daterange"
	"carshare/shared/failure"
)

type fixture struct {
	repo      *resourceMocks.MockResource
	committed *resourceMocks.MockCommittedRangeSource
	cache     *cacheMocks.MockRedisCache
	s3        *s3Mocks.MockS3
	svc       service.Resource
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:      resourceMocks.NewMockResource(ctrl),
		committed: resourceMocks.NewMockCommittedRangeSource(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		s3:        s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.committed, cfg, f.cache, mocks.NewOtel(), f.s3)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func sampleResource() model.Resource {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	return model.Resource{
		ID:             "car-1",
		OwnerID:        "owner-1",
		PlateNumber:    "B 1234 XYZ",
		DailyPrice:     50000,
		AvailableFrom:  from,
		AvailableUntil: from.Add(30 * daterange.Day),
		Images:         pq.StringArray{"https://cdn/a.png", "https://cdn/b.png"},
	}
}

func TestResourceService_GetRentInfo(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.RentInfo)
	}{
		{
			name: "cache miss loads resource and committed ranges",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "resource:rent-info:car-1", gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleResource(), nil)
				f.committed.EXPECT().CommittedRanges(gomock.Any(), "car-1").Return([]daterange.DateRange{
					{Start: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)},
				}, nil)
			},
			check: func(t *testing.T, res dto.RentInfo) {
				t.Helper()

				assert.Equal(t, int64(50000), res.DailyPrice)
				assert.Equal(t, "owner-1", res.OwnerID)
				assert.Len(t, res.CommittedRanges, 1)
				assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), res.AvailableWindow.End)
			},
		},
		{
			name: "committed ranges outside the window are dropped",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleResource(), nil)
				f.committed.EXPECT().CommittedRanges(gomock.Any(), "car-1").Return([]daterange.DateRange{
					{Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)},
					{Start: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
					{Start: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC)},
				}, nil)
			},
			check: func(t *testing.T, res dto.RentInfo) {
				t.Helper()

				require.Len(t, res.CommittedRanges, 1)
				assert.Equal(t, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), res.CommittedRanges[0].Start)
			},
		},
		{
			name: "cache hit",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						info, ok := value.(*dto.RentInfo)
						require.True(t, ok)
						info.ID = "car-1"
						info.DailyPrice = 7

						return nil
					})
			},
			check: func(t *testing.T, res dto.RentInfo) {
				t.Helper()

				assert.Equal(t, int64(7), res.DailyPrice)
			},
		},
		{
			name: "unknown resource",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Resource{}, failure.NotFound(model.EntityName))
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "committed ranges fail",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleResource(), nil)
				f.committed.EXPECT().CommittedRanges(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.GetRentInfo(context.Background(), "car-1")

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestResourceService_GetDetails(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "resource:details:car-1", gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleResource(), nil)

	res, err := f.svc.GetDetails(context.Background(), "car-1")
	require.NoError(t, err)
	assert.Equal(t, "B 1234 XYZ", res.PlateNumber)
	assert.Equal(t, "https://cdn/a.png", res.FirstImage)
}

func TestResourceService_AddImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}

	tests := []struct {
		name      string
		req       dto.AddImageRequest
		setupMock func(f fixture)
		wantCode  int
		wantURL   string
	}{
		{
			name: "owner uploads image",
			req:  dto.AddImageRequest{ResourceID: "car-1", UserID: "owner-1", ContentType: "image/png", Data: png},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleResource(), nil)
				f.s3.EXPECT().UploadFileBytes(gomock.Any(), "resources/car-1", gomock.Any(), "image/png", png).
					Return("https://cdn/resources/car-1/x", nil)
				f.repo.EXPECT().AppendImage(gomock.Any(), "car-1", "https://cdn/resources/car-1/x", gomock.Any()).Return(nil)
			},
			wantURL: "https://cdn/resources/car-1/x",
		},
		{
			name: "non owner is rejected",
			req:  dto.AddImageRequest{ResourceID: "car-1", UserID: "someone", ContentType: "image/png", Data: png},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleResource(), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:      "unsupported content type",
			req:       dto.AddImageRequest{ResourceID: "car-1", UserID: "owner-1", ContentType: "application/pdf", Data: png},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "append failure removes the upload",
			req:  dto.AddImageRequest{ResourceID: "car-1", UserID: "owner-1", ContentType: "image/png", Data: png},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleResource(), nil)
				f.s3.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn/resources/car-1/x", nil)
				f.repo.EXPECT().AppendImage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
				f.s3.EXPECT().GetObjectNameFromURL("https://cdn/resources/car-1/x").Return("resources/car-1/x")
				f.s3.EXPECT().DeleteFile(gomock.Any(), "resources/car-1/x").Return(nil)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.AddImage(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, res.URL)
		})
	}
}
