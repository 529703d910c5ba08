/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package direct

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/suparena/storekit/errors"
)

// queueStore implements storekit.QueueStore over SQS with at-least-once,
// receive-then-acknowledge semantics.
type queueStore struct {
	b *Backend
}

func (qs *queueStore) url(ctx context.Context, queue string) (string, error) {
	qs.b.mu.RLock()
	cached, ok := qs.b.queueURLs[queue]
	qs.b.mu.RUnlock()
	if ok {
		return cached, nil
	}

	out, err := qs.b.sqs.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: aws.String(queue)})
	if err != nil {
		return "", errors.NewBackendError("GetQueueUrl", queue, err)
	}
	resolved := aws.ToString(out.QueueUrl)

	qs.b.mu.Lock()
	qs.b.queueURLs[queue] = resolved
	qs.b.mu.Unlock()
	return resolved, nil
}

// Send enqueues one message payload.
func (qs *queueStore) Send(ctx context.Context, queue, payload string) error {
	queueURL, err := qs.url(ctx, queue)
	if err != nil {
		return err
	}
	_, err = qs.b.sqs.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(payload),
	})
	if err != nil {
		return errors.NewBackendError("SendMessage", queue, err)
	}
	return nil
}

// Receive takes a single message and acknowledges it by deleting it before
// returning the payload. A message that fails to delete will be delivered
// again, hence at-least-once.
func (qs *queueStore) Receive(ctx context.Context, queue string) (*string, error) {
	queueURL, err := qs.url(ctx, queue)
	if err != nil {
		return nil, err
	}

	out, err := qs.b.sqs.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(queueURL),
		MaxNumberOfMessages: 1,
	})
	if err != nil {
		return nil, errors.NewBackendError("ReceiveMessage", queue, err)
	}
	if len(out.Messages) == 0 {
		return nil, nil
	}

	msg := out.Messages[0]
	_, err = qs.b.sqs.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		return nil, errors.NewBackendError("DeleteMessage", queue, err)
	}

	payload := aws.ToString(msg.Body)
	return &payload, nil
}
