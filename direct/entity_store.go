/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package direct

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/models"
	"github.com/suparena/storekit/registry"
)

// entityStore implements storekit.EntityStore[T] over one DynamoDB table.
// Optimistic concurrency rides on conditional writes: the backing store
// serializes them remotely, so no in-process locking is needed and no
// entity is ever cached across calls.
type entityStore[T models.Entity] struct {
	b         *Backend
	kind      models.Kind
	table     string
	newEntity func() T
}

func newEntityStore[T models.Entity](b *Backend, kind models.Kind, newEntity func() T) *entityStore[T] {
	return &entityStore[T]{
		b:         b,
		kind:      kind,
		table:     registry.TableName(kind),
		newEntity: newEntity,
	}
}

func entityKey(partitionKey, rowKey string) map[string]ddbtypes.AttributeValue {
	return map[string]ddbtypes.AttributeValue{
		"PK": &ddbtypes.AttributeValueMemberS{Value: partitionKey},
		"SK": &ddbtypes.AttributeValueMemberS{Value: rowKey},
	}
}

// List scans the whole table. Order is unspecified.
func (s *entityStore[T]) List(ctx context.Context) ([]T, error) {
	var entities []T
	var startKey map[string]ddbtypes.AttributeValue
	for {
		out, err := s.b.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, errors.NewBackendError("List", s.table, err)
		}
		for _, item := range out.Items {
			entity := s.newEntity()
			if err := attributevalue.UnmarshalMap(item, entity); err != nil {
				return nil, fmt.Errorf("failed to unmarshal %s item: %w", s.kind, err)
			}
			entities = append(entities, entity)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return entities, nil
}

// Get returns nil for blank keys or a missing item; absence is not an error.
func (s *entityStore[T]) Get(ctx context.Context, partitionKey, rowKey string) (T, error) {
	var zero T
	if strings.TrimSpace(partitionKey) == "" || strings.TrimSpace(rowKey) == "" {
		s.b.log.Warn("entity lookup with blank key", slog.String("kind", string(s.kind)))
		return zero, nil
	}

	out, err := s.b.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       entityKey(partitionKey, rowKey),
	})
	if err != nil {
		return zero, errors.NewBackendError("Get", s.table, err)
	}
	if out.Item == nil {
		return zero, nil
	}

	entity := s.newEntity()
	if err := attributevalue.UnmarshalMap(out.Item, entity); err != nil {
		return zero, fmt.Errorf("failed to unmarshal %s item: %w", s.kind, err)
	}
	return entity, nil
}

// Create persists a new entity under a conditional put that rejects key
// collisions. The backend assigns a blank row key and always assigns a
// fresh concurrency token.
func (s *entityStore[T]) Create(ctx context.Context, entity T) error {
	partitionKey, rowKey := entity.Keys()
	if partitionKey == "" {
		partitionKey = string(s.kind)
	}
	if rowKey == "" {
		rowKey = uuid.NewString()
	}

	prevToken := entity.ConcurrencyToken()
	entity.SetPartitionKey(partitionKey)
	entity.SetRowKey(rowKey)
	entity.SetConcurrencyToken(uuid.NewString())

	item, err := attributevalue.MarshalMap(entity)
	if err != nil {
		entity.SetConcurrencyToken(prevToken)
		return fmt.Errorf("failed to marshal %s entity: %w", s.kind, err)
	}

	_, err = s.b.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		entity.SetConcurrencyToken(prevToken)
		var conditionFailed *ddbtypes.ConditionalCheckFailedException
		if goerrors.As(err, &conditionFailed) {
			return errors.NewDuplicateKeyError(string(s.kind), partitionKey, rowKey)
		}
		return errors.NewBackendError("Create", s.table, err)
	}
	return nil
}

// Update replaces the stored entity behind a token precondition. On
// mismatch it fails with a concurrency conflict and the caller re-reads
// and retries; there is no automatic retry and no field-level merge.
func (s *entityStore[T]) Update(ctx context.Context, entity T) error {
	partitionKey, rowKey := entity.Keys()
	if strings.TrimSpace(partitionKey) == "" || strings.TrimSpace(rowKey) == "" {
		return errors.NewValidationError("key", "update requires partition and row keys")
	}
	expected := entity.ConcurrencyToken()
	if expected == "" {
		return errors.NewValidationError("concurrencyToken", "update requires the token from a prior read")
	}

	entity.SetConcurrencyToken(uuid.NewString())
	item, err := attributevalue.MarshalMap(entity)
	if err != nil {
		entity.SetConcurrencyToken(expected)
		return fmt.Errorf("failed to marshal %s entity: %w", s.kind, err)
	}

	_, err = s.b.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("ETag = :expected"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":expected": &ddbtypes.AttributeValueMemberS{Value: expected},
		},
	})
	if err != nil {
		entity.SetConcurrencyToken(expected)
		var conditionFailed *ddbtypes.ConditionalCheckFailedException
		if goerrors.As(err, &conditionFailed) {
			s.b.log.Warn("entity update rejected by token precondition",
				slog.String("kind", string(s.kind)), slog.String("rowKey", rowKey))
			return errors.NewConcurrencyConflictError(string(s.kind), rowKey)
		}
		return errors.NewBackendError("Update", s.table, err)
	}
	return nil
}

// Delete removes the entity unconditionally; deleting an absent entity is
// not an error.
func (s *entityStore[T]) Delete(ctx context.Context, partitionKey, rowKey string) error {
	if strings.TrimSpace(partitionKey) == "" || strings.TrimSpace(rowKey) == "" {
		return nil
	}
	_, err := s.b.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       entityKey(partitionKey, rowKey),
	})
	if err != nil {
		return errors.NewBackendError("Delete", s.table, err)
	}
	return nil
}
