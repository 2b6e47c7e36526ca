package queue

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"
)

// AzureSender writes orders to an Azure Storage Queue. The message text is
// the JSON document as is, without base64 encoding.
type AzureSender struct {
	client *azqueue.QueueClient
	name   string
}

// NewAzureSender connects to queueName using a storage connection string.
// The SDK retry policy is disabled so each Send is a single attempt.
func NewAzureSender(connectionString, queueName string) (*AzureSender, error) {
	opts := &azqueue.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{MaxRetries: -1},
		},
	}
	client, err := azqueue.NewQueueClientFromConnectionString(connectionString, queueName, opts)
	if err != nil {
		return nil, fmt.Errorf("azure queue %q: %w", queueName, err)
	}
	return &AzureSender{client: client, name: queueName}, nil
}

// Backend implements Sender.
func (a *AzureSender) Backend() string { return "azure" }

// Send enqueues payload. The key is not used by Storage Queues.
func (a *AzureSender) Send(ctx context.Context, _ string, payload string) error {
	if _, err := a.client.EnqueueMessage(ctx, payload, nil); err != nil {
		return fmt.Errorf("enqueue to %s: %w", a.name, err)
	}
	return nil
}

// Close implements Sender. The client holds no resources.
func (a *AzureSender) Close() error { return nil }
