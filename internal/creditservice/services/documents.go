package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/mycompany/credit-platform/internal/common"
	sc "github.com/mycompany/credit-platform/internal/creditservice/config"
	"github.com/mycompany/credit-platform/internal/creditservice/models"
	"github.com/mycompany/credit-platform/internal/creditservice/policy"
	apprepo "github.com/mycompany/credit-platform/internal/creditservice/repositories/applications"
	docrepo "github.com/mycompany/credit-platform/internal/creditservice/repositories/documents"
	"github.com/mycompany/credit-platform/internal/logging"
)

// presignExpiry bounds how long an upload or download URL stays usable.
const presignExpiry = 15 * time.Minute

// Seams over the AWS SDK so presign behavior is testable without a live
// S3 endpoint.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// DocumentService manages supporting-document metadata and hands out
// presigned URLs; payload bytes never pass through the service.
type DocumentService struct {
	apps   apprepo.Repository
	docs   docrepo.Repository
	config *sc.Config
	log    logging.Logger
	now    func() time.Time
}

type DocumentOption func(*DocumentService)

// WithDocumentClock overrides the time source, for deterministic tests.
func WithDocumentClock(now func() time.Time) DocumentOption {
	return func(s *DocumentService) { s.now = now }
}

func NewDocumentService(apps apprepo.Repository, docs docrepo.Repository, config *sc.Config, log logging.Logger, opts ...DocumentOption) *DocumentService {
	s := &DocumentService{apps: apps, docs: docs, config: config, log: log, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func storageKey(applicationID int64) string {
	return fmt.Sprintf("applications/%d/%v", applicationID, uuid.New())
}

func (s *DocumentService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// gate loads the application and applies the attach/view authorization,
// which is the same ownership rule as GetByID.
func (s *DocumentService) gate(ctx context.Context, actor Actor, applicationID int64) (*models.Application, error) {
	if err := policy.Require(actor.Role, policy.ActionAttachDocument); err != nil {
		return nil, err
	}

	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error searching application: %w", err)
	}
	if err := policy.RequireOwnership(actor.Role, actor.UserID, app.UserID); err != nil {
		return nil, err
	}
	return app, nil
}

// Attach records document metadata and returns a presigned PUT URL for the
// payload upload.
func (s *DocumentService) Attach(ctx context.Context, actor Actor, applicationID int64, fileName string) (*models.Document, string, error) {
	if _, err := s.gate(ctx, actor, applicationID); err != nil {
		return nil, "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, "", fmt.Errorf("error building presign client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := storageKey(applicationID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, "", fmt.Errorf("error presigning upload: %w", err)
	}

	doc := &models.Document{
		ApplicationID: applicationID,
		FileName:      fileName,
		StorageKey:    key,
		CreatedAt:     s.now().UTC(),
	}
	doc, err = s.docs.Create(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("error creating document: %w", err)
	}

	s.log.Info(ctx, "document attached", "application_id", applicationID, "document_id", doc.ID)

	return doc, req.URL, nil
}

// List returns the metadata of all documents attached to the application.
func (s *DocumentService) List(ctx context.Context, actor Actor, applicationID int64) ([]*models.Document, error) {
	if _, err := s.gate(ctx, actor, applicationID); err != nil {
		return nil, err
	}

	docs, err := s.docs.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	return docs, nil
}

// Download returns a presigned GET URL for one document's payload.
func (s *DocumentService) Download(ctx context.Context, actor Actor, applicationID, documentID int64) (string, error) {
	if _, err := s.gate(ctx, actor, applicationID); err != nil {
		return "", err
	}

	doc, err := s.docs.GetByID(ctx, applicationID, documentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrDocumentNotFound
		}
		return "", fmt.Errorf("error searching document: %w", err)
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", fmt.Errorf("error building presign client: %w", err)
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &doc.StorageKey,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("error presigning download: %w", err)
	}

	return req.URL, nil
}
