/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package direct

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"

	"github.com/suparena/storekit"
	"github.com/suparena/storekit/config"
	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/models"
	"github.com/suparena/storekit/registry"
)

// Backend implements storekit.Store against DynamoDB tables, S3 buckets,
// and SQS queues. Construction only builds clients; Provision must be
// called once at process start before the backend serves requests.
type Backend struct {
	cfg config.DirectConfig
	log *slog.Logger

	ddb *dynamodb.Client
	s3  *s3.Client
	sqs *sqs.Client

	customers *entityStore[*models.Customer]
	products  *entityStore[*models.Product]
	orders    *entityStore[*models.Order]
	blobs     *blobStore
	queues    *queueStore
	files     *fileStore

	mu              sync.RWMutex
	queueURLs       map[string]string
	fileShareReady  bool
	fileShareReason string
}

var _ storekit.Store = (*Backend)(nil)

// New builds a direct backend from connection parameters. When the endpoint
// override points at a local development emulator the hierarchical file
// store is disabled up front; such endpoints do not support it reliably.
func New(ctx context.Context, cfg config.DirectConfig, log *slog.Logger) (*Backend, error) {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Region == "" {
		return nil, errors.NewValidationError("region", "must not be empty")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	b := &Backend{
		cfg: cfg,
		log: log,
		ddb: dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
		}),
		s3: s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
				o.UsePathStyle = true
			}
		}),
		sqs: sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
		}),
		queueURLs:      make(map[string]string),
		fileShareReady: true,
	}

	if isDevelopmentEndpoint(cfg.Endpoint) {
		b.fileShareReady = false
		b.fileShareReason = "development storage endpoint"
		log.Info("development storage endpoint detected, hierarchical file store disabled",
			slog.String("endpoint", cfg.Endpoint))
	}

	b.customers = newEntityStore(b, models.KindCustomer, func() *models.Customer { return &models.Customer{} })
	b.products = newEntityStore(b, models.KindProduct, func() *models.Product { return &models.Product{} })
	b.orders = newEntityStore(b, models.KindOrder, func() *models.Order { return &models.Order{} })
	b.blobs = &blobStore{b: b}
	b.queues = &queueStore{b: b}
	b.files = &fileStore{b: b}
	return b, nil
}

// isDevelopmentEndpoint reports whether the endpoint override targets a
// local storage emulator.
func isDevelopmentEndpoint(endpoint string) bool {
	if endpoint == "" {
		return false
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return strings.Contains(u.Hostname(), "localstack")
}

// ProvisionReport collects provisioning outcomes per capability. A nil
// field means the capability was set up (or deliberately skipped, for the
// file share on development endpoints).
type ProvisionReport struct {
	Tables    error
	Blobs     error
	Queues    error
	FileShare error
}

// Err joins the per-capability failures, nil when everything provisioned.
func (r *ProvisionReport) Err() error {
	return goerrors.Join(r.Tables, r.Blobs, r.Queues, r.FileShare)
}

// Provision idempotently creates every table, bucket, and queue the backend
// needs, plus the file share directory marker. It is explicit and awaitable
// rather than a detached task, so callers sequence it before serving; a
// failed capability is logged and reported, never fatal, and the affected
// capability stays unavailable for the process lifetime.
func (b *Backend) Provision(ctx context.Context) *ProvisionReport {
	report := &ProvisionReport{
		Tables: b.provisionTables(ctx),
		Blobs:  b.provisionBuckets(ctx),
		Queues: b.provisionQueues(ctx),
	}
	report.FileShare = b.provisionFileShare(ctx)

	if err := report.Err(); err != nil {
		b.log.Warn("storage provisioning finished with failures", slog.Any("error", err))
	} else {
		b.log.Info("storage provisioning complete")
	}
	return report
}

func (b *Backend) provisionTables(ctx context.Context) error {
	var errs []error
	for _, kind := range registry.Kinds() {
		name := registry.TableName(kind)
		_, err := b.ddb.CreateTable(ctx, &dynamodb.CreateTableInput{
			TableName: aws.String(name),
			AttributeDefinitions: []ddbtypes.AttributeDefinition{
				{AttributeName: aws.String("PK"), AttributeType: ddbtypes.ScalarAttributeTypeS},
				{AttributeName: aws.String("SK"), AttributeType: ddbtypes.ScalarAttributeTypeS},
			},
			KeySchema: []ddbtypes.KeySchemaElement{
				{AttributeName: aws.String("PK"), KeyType: ddbtypes.KeyTypeHash},
				{AttributeName: aws.String("SK"), KeyType: ddbtypes.KeyTypeRange},
			},
			BillingMode: ddbtypes.BillingModePayPerRequest,
		})
		if err != nil {
			var inUse *ddbtypes.ResourceInUseException
			if goerrors.As(err, &inUse) {
				continue
			}
			errs = append(errs, errors.NewBackendError("CreateTable", name, err))
			continue
		}
		b.log.Info("table created", slog.String("table", name))
	}
	return goerrors.Join(errs...)
}

func (b *Backend) provisionBuckets(ctx context.Context) error {
	var errs []error
	for _, container := range []string{registry.ImageContainer, registry.DocumentContainer} {
		if err := b.createBucket(ctx, container, registry.IsPublicContainer(container)); err != nil {
			errs = append(errs, err)
		}
	}
	return goerrors.Join(errs...)
}

func (b *Backend) createBucket(ctx context.Context, name string, public bool) error {
	input := &s3.CreateBucketInput{Bucket: aws.String(name)}
	if public {
		input.ACL = s3types.BucketCannedACLPublicRead
	}
	if b.cfg.Region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(b.cfg.Region),
		}
	}
	_, err := b.s3.CreateBucket(ctx, input)
	if err != nil {
		var owned *s3types.BucketAlreadyOwnedByYou
		var exists *s3types.BucketAlreadyExists
		if goerrors.As(err, &owned) || goerrors.As(err, &exists) {
			return nil
		}
		return errors.NewBackendError("CreateBucket", name, err)
	}
	b.log.Info("bucket created", slog.String("bucket", name), slog.Bool("public", public))
	return nil
}

func (b *Backend) provisionQueues(ctx context.Context) error {
	var errs []error
	for _, queue := range []string{registry.OrderQueue, registry.StockQueue} {
		out, err := b.sqs.CreateQueue(ctx, &sqs.CreateQueueInput{QueueName: aws.String(queue)})
		if err != nil {
			errs = append(errs, errors.NewBackendError("CreateQueue", queue, err))
			continue
		}
		b.mu.Lock()
		b.queueURLs[queue] = aws.ToString(out.QueueUrl)
		b.mu.Unlock()
		b.log.Info("queue ready", slog.String("queue", queue))
	}
	return goerrors.Join(errs...)
}

func (b *Backend) provisionFileShare(ctx context.Context) error {
	b.mu.RLock()
	ready := b.fileShareReady
	b.mu.RUnlock()
	if !ready {
		b.log.Info("skipping file share provisioning", slog.String("reason", b.fileShareReason))
		return nil
	}

	err := b.createBucket(ctx, registry.ContractsShare, false)
	if err == nil {
		// Directory marker so the payments subdirectory is listable before
		// the first upload.
		_, err = b.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(registry.ContractsShare),
			Key:    aws.String(registry.PaymentsDirectory + "/"),
			Body:   strings.NewReader(""),
		})
		if err != nil {
			err = errors.NewBackendError("PutObject", registry.ContractsShare+"/"+registry.PaymentsDirectory, err)
		}
	}
	if err != nil {
		b.mu.Lock()
		b.fileShareReady = false
		b.fileShareReason = "provisioning failed"
		b.mu.Unlock()
		b.log.Warn("file share provisioning failed, file operations disabled", slog.Any("error", err))
		return err
	}
	b.log.Info("file share ready", slog.String("share", registry.ContractsShare))
	return nil
}

// Customers returns the customer entity store.
func (b *Backend) Customers() storekit.EntityStore[*models.Customer] { return b.customers }

// Products returns the product entity store.
func (b *Backend) Products() storekit.EntityStore[*models.Product] { return b.products }

// Orders returns the order entity store.
func (b *Backend) Orders() storekit.EntityStore[*models.Order] { return b.orders }

// Blobs returns the blob capability.
func (b *Backend) Blobs() storekit.BlobStore { return b.blobs }

// Queues returns the queue capability.
func (b *Backend) Queues() storekit.QueueStore { return b.queues }

// Files returns the hierarchical file capability.
func (b *Backend) Files() storekit.FileStore { return b.files }

// UpdateOrderStatus sets the status of an existing order and rotates the
// concurrency token. The status field is workflow-owned, so no token
// precondition applies; the write still requires the order to exist.
func (b *Backend) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if strings.TrimSpace(orderID) == "" {
		return errors.NewValidationError("orderID", "must not be empty")
	}
	if strings.TrimSpace(status) == "" {
		return errors.NewValidationError("status", "must not be empty")
	}

	table := registry.TableName(models.KindOrder)
	_, err := b.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(table),
		Key: map[string]ddbtypes.AttributeValue{
			"PK": &ddbtypes.AttributeValueMemberS{Value: string(models.KindOrder)},
			"SK": &ddbtypes.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression:    aws.String("SET #status = :status, ETag = :etag"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "Status",
		},
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":status": &ddbtypes.AttributeValueMemberS{Value: status},
			":etag":   &ddbtypes.AttributeValueMemberS{Value: uuid.NewString()},
		},
	})
	if err != nil {
		var conditionFailed *ddbtypes.ConditionalCheckFailedException
		if goerrors.As(err, &conditionFailed) {
			return errors.NewNotFoundError(string(models.KindOrder), orderID)
		}
		return errors.NewBackendError("UpdateOrderStatus", table, err)
	}
	return nil
}
