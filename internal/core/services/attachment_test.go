// internal/core/services/attachment_test.go
package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/services"
	"github.com/ammerola/procure-be/test/helpers"
	"github.com/ammerola/procure-be/test/mocks"
)

type attachmentFixture struct {
	repo    *mocks.MockAttachmentRepository
	orders  *mocks.MockPurchaseOrderRepository
	storage *mocks.MockFileStorage
	service *services.AttachmentService
}

func newAttachmentFixture(t *testing.T) *attachmentFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &attachmentFixture{
		repo:    mocks.NewMockAttachmentRepository(ctrl),
		orders:  mocks.NewMockPurchaseOrderRepository(ctrl),
		storage: mocks.NewMockFileStorage(ctrl),
	}
	f.service = services.NewAttachmentService(f.repo, f.orders, f.storage, 1024, time.Minute, helpers.TestLogger())
	return f
}

func TestAttachmentService_Upload(t *testing.T) {
	po := helpers.CreateTestPurchaseOrder(nil, []int64{10}, func(h *domain.PurchaseOrderHeader) {
		h.PONumber = "PO-2025-001"
	})

	tests := []struct {
		name     string
		fileName string
		size     int64
		setup    func(f *attachmentFixture)
		checkErr func(*testing.T, error)
		validate func(*testing.T, *domain.Attachment)
	}{
		{
			name:     "stores_under_order_number",
			fileName: "../invoice 01.pdf",
			size:     12,
			setup: func(f *attachmentFixture) {
				f.orders.EXPECT().Load(gomock.Any(), po.Header.ID).Return(po, nil)
				f.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), "application/pdf").
					DoAndReturn(func(_ context.Context, key string, _ any, _ string) (string, error) {
						assert.True(t, strings.HasPrefix(key, "purchase-orders/PO-2025-001/"))
						assert.True(t, strings.HasSuffix(key, "-invoice_01.pdf"))
						return key, nil
					})
				f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				f.storage.EXPECT().GetPresignedURL(gomock.Any(), gomock.Any(), time.Minute).
					Return("https://files.example/invoice", nil)
			},
			validate: func(t *testing.T, a *domain.Attachment) {
				assert.Equal(t, "invoice_01.pdf", a.FileName)
				assert.Equal(t, po.Header.ID, a.HeaderID)
				assert.Equal(t, int64(12), a.Size)
				assert.Equal(t, "https://files.example/invoice", a.URL)
			},
		},
		{
			name:     "failed_record_removes_stored_object",
			fileName: "invoice.pdf",
			size:     12,
			setup: func(f *attachmentFixture) {
				f.orders.EXPECT().Load(gomock.Any(), po.Header.ID).Return(po, nil)
				f.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("key", nil)
				f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
				f.storage.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
			checkErr: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "insert failed")
			},
		},
		{
			name:     "oversized_file",
			fileName: "scan.png",
			size:     4096,
			checkErr: func(t *testing.T, err error) {
				assert.True(t, domain.IsValidation(err))
			},
		},
		{
			name:     "empty_file",
			fileName: "scan.png",
			checkErr: func(t *testing.T, err error) {
				assert.True(t, domain.IsValidation(err))
			},
		},
		{
			name:     "unknown_order",
			fileName: "scan.png",
			size:     10,
			setup: func(f *attachmentFixture) {
				f.orders.EXPECT().Load(gomock.Any(), po.Header.ID).
					Return(nil, domain.NotFound("purchase order", po.Header.ID))
			},
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAttachmentFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			a, err := f.service.Upload(context.Background(), po.Header.ID, tt.fileName, "application/pdf",
				tt.size, strings.NewReader("%PDF-1.4 fake"))

			if tt.checkErr != nil {
				require.Error(t, err)
				tt.checkErr(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, a)
		})
	}
}

func TestAttachmentService_List(t *testing.T) {
	f := newAttachmentFixture(t)
	headerID := uuid.New()

	f.repo.EXPECT().ListByHeader(gomock.Any(), headerID).Return([]domain.Attachment{
		{ID: uuid.New(), HeaderID: headerID, StorageKey: "a"},
		{ID: uuid.New(), HeaderID: headerID, StorageKey: "b"},
	}, nil)
	f.storage.EXPECT().GetPresignedURL(gomock.Any(), "a", time.Minute).Return("url-a", nil)
	f.storage.EXPECT().GetPresignedURL(gomock.Any(), "b", time.Minute).Return("", errors.New("expired credentials"))

	attachments, err := f.service.List(context.Background(), headerID)

	require.NoError(t, err)
	require.Len(t, attachments, 2)
	assert.Equal(t, "url-a", attachments[0].URL)
	assert.Empty(t, attachments[1].URL)
}

func TestAttachmentService_Delete(t *testing.T) {
	f := newAttachmentFixture(t)
	a := &domain.Attachment{ID: uuid.New(), StorageKey: "purchase-orders/PO-1/x-invoice.pdf"}

	f.repo.EXPECT().FindByID(gomock.Any(), a.ID).Return(a, nil)
	f.repo.EXPECT().Delete(gomock.Any(), a.ID).Return(nil)
	f.storage.EXPECT().Delete(gomock.Any(), a.StorageKey).Return(errors.New("bucket gone"))

	assert.NoError(t, f.service.Delete(context.Background(), a.ID))

	missing := uuid.New()
	f.repo.EXPECT().FindByID(gomock.Any(), missing).Return(nil, domain.NotFound("attachment", missing))
	assert.ErrorIs(t, f.service.Delete(context.Background(), missing), domain.ErrNotFound)
}
