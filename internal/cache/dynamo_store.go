package cache

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
)

// Entry is a single cached payload. Payloads are opaque JSON so one table
// serves tide datasets and condition predictions alike.
type Entry struct {
	Key         string `dynamodbav:"cacheKey" json:"key"`
	Payload     []byte `dynamodbav:"payload" json:"payload"`
	LastUpdated int64  `dynamodbav:"lastUpdated" json:"lastUpdated"`
	ExpiresAt   int64  `dynamodbav:"expiresAt" json:"expiresAt"`
}

// DynamoStore persists cache entries so results survive process restarts.
type DynamoStore struct {
	client    DynamoDBClient
	tableName string
}

func NewDynamoStore(client DynamoDBClient, tableName string) *DynamoStore {
	return &DynamoStore{
		client:    client,
		tableName: tableName,
	}
}

// Get retrieves an entry by key. Missing items return (nil, nil); expiry is
// the caller's concern so the fresh/stale distinction stays in one place.
func (s *DynamoStore) Get(ctx context.Context, key string) (*Entry, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"cacheKey": &types.AttributeValueMemberS{Value: key},
		},
	}

	result, err := s.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("getting entry from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var entry Entry
	if err := attributevalue.UnmarshalMap(result.Item, &entry); err != nil {
		return nil, fmt.Errorf("unmarshaling cache entry: %w", err)
	}

	return &entry, nil
}

// Put overwrites the entry under its key.
func (s *DynamoStore) Put(ctx context.Context, entry Entry) error {
	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("putting entry in DynamoDB: %w", err)
	}

	log.Debug().Str("key", entry.Key).Msg("Saved cache entry to DynamoDB")
	return nil
}
