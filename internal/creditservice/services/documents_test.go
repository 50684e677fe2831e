package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mycompany/credit-platform/internal/common"
	sc "github.com/mycompany/credit-platform/internal/creditservice/config"
	"github.com/mycompany/credit-platform/internal/creditservice/models"
	"github.com/mycompany/credit-platform/internal/logging"
)

type fakeDocRepo struct {
	byID   map[int64]*models.Document
	nextID int64
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{byID: map[int64]*models.Document{}, nextID: 1}
}

func (f *fakeDocRepo) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	doc.ID = f.nextID
	f.nextID++
	f.byID[doc.ID] = doc
	return doc, nil
}

func (f *fakeDocRepo) GetByID(ctx context.Context, applicationID, id int64) (*models.Document, error) {
	doc, ok := f.byID[id]
	if !ok || doc.ApplicationID != applicationID {
		return nil, common.ErrNotFound
	}
	return doc, nil
}

func (f *fakeDocRepo) ListByApplication(ctx context.Context, applicationID int64) ([]*models.Document, error) {
	out := []*models.Document{}
	for _, d := range f.byID {
		if d.ApplicationID == applicationID {
			out = append(out, d)
		}
	}
	return out, nil
}

// stubPresign replaces the AWS seams for the duration of a test and returns
// canned URLs.
func stubPresign(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "https://s3.test/put/" + *in.Key}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "https://s3.test/get/" + *in.Key}, nil
	}
}

func newDocService(t *testing.T) (*DocumentService, *fakeAppRepo, *fakeDocRepo) {
	t.Helper()
	stubPresign(t)

	apps := newFakeAppRepo()
	docs := newFakeDocRepo()
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewDocumentService(apps, docs, cfg, log), apps, docs
}

func seedApp(t *testing.T, apps *fakeAppRepo, ownerID int64) *models.Application {
	t.Helper()
	app, err := apps.Create(context.Background(), models.NewApplication(ownerID, 200000, 12, "car", time.Now()))
	if err != nil {
		t.Fatal(err)
	}
	return app
}

func TestAttach(t *testing.T) {
	svc, apps, docs := newDocService(t)
	app := seedApp(t, apps, 1)

	doc, uploadURL, err := svc.Attach(context.Background(), affiliate, app.ID, "payslip.pdf")
	if err != nil {
		t.Fatalf("Attach error: %v", err)
	}
	if doc.FileName != "payslip.pdf" || doc.ApplicationID != app.ID {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if !strings.HasPrefix(doc.StorageKey, "applications/1/") {
		t.Fatalf("unexpected storage key: %q", doc.StorageKey)
	}
	if !strings.HasPrefix(uploadURL, "https://s3.test/put/") {
		t.Fatalf("unexpected upload URL: %q", uploadURL)
	}
	if len(docs.byID) != 1 {
		t.Fatal("metadata not persisted")
	}
}

func TestAttach_OwnershipGate(t *testing.T) {
	svc, apps, _ := newDocService(t)
	app := seedApp(t, apps, 1)

	if _, _, err := svc.Attach(context.Background(), otherAffiliate, app.ID, "x.pdf"); !errors.Is(err, common.ErrNotOwner) {
		t.Fatalf("foreign attach = %v, want ErrNotOwner", err)
	}
	if _, _, err := svc.Attach(context.Background(), analyst, app.ID, "x.pdf"); err != nil {
		t.Fatalf("analyst attach: %v", err)
	}
	if _, _, err := svc.Attach(context.Background(), affiliate, 404, "x.pdf"); !errors.Is(err, common.ErrApplicationNotFound) {
		t.Fatalf("missing application = %v", err)
	}
}

func TestListAndDownload(t *testing.T) {
	svc, apps, _ := newDocService(t)
	app := seedApp(t, apps, 1)
	other := seedApp(t, apps, 2)

	doc, _, err := svc.Attach(context.Background(), affiliate, app.ID, "payslip.pdf")
	if err != nil {
		t.Fatal(err)
	}

	list, err := svc.List(context.Background(), affiliate, app.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("List: %v, %d docs", err, len(list))
	}

	url, err := svc.Download(context.Background(), affiliate, app.ID, doc.ID)
	if err != nil {
		t.Fatalf("Download error: %v", err)
	}
	if url != "https://s3.test/get/"+doc.StorageKey {
		t.Fatalf("unexpected download URL: %q", url)
	}

	// a document id cannot be reached through another application
	if _, err := svc.Download(context.Background(), otherAffiliate, other.ID, doc.ID); !errors.Is(err, common.ErrDocumentNotFound) {
		t.Fatalf("cross-application download = %v, want ErrDocumentNotFound", err)
	}
}
