package issuelog

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spacesedan/reviewlens/internal/models"
)

// DynamoDBAPI is the subset of *dynamodb.Client the backend uses.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoDBBackend stores one item per entry keyed by id. Seq is the
// creation time in nanoseconds, which orders a full scan. The Log write
// lock keeps it monotonic within a process.
type DynamoDBBackend struct {
	client  DynamoDBAPI
	table   string
	lastSeq int64
}

func NewDynamoDBBackend(client DynamoDBAPI, table string) *DynamoDBBackend {
	return &DynamoDBBackend{client: client, table: table}
}

func (d *DynamoDBBackend) Name() string { return "dynamodb" }

func (d *DynamoDBBackend) Put(ctx context.Context, entry models.IssueLogEntry) (models.IssueLogEntry, error) {
	seq := entry.CreatedAt.UnixNano()
	if seq <= d.lastSeq {
		seq = d.lastSeq + 1
	}
	entry.Seq = seq

	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return entry, fmt.Errorf("[DynamoDB] failed to marshal entry: %w", err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return entry, fmt.Errorf("[DynamoDB] failed to put entry: %w", err)
	}
	d.lastSeq = seq
	return entry, nil
}

func (d *DynamoDBBackend) List(ctx context.Context) ([]models.IssueLogEntry, error) {
	var entries []models.IssueLogEntry
	paginator := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName: aws.String(d.table),
	})

	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] scan failed: %w", err)
		}
		var page []models.IssueLogEntry
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("[DynamoDB] failed to unmarshal page: %w", err)
		}
		entries = append(entries, page...)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Seq < entries[j].Seq
	})
	return entries, nil
}

func (d *DynamoDBBackend) Ping(ctx context.Context) error {
	_, err := d.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(d.table),
	})
	return err
}

func (d *DynamoDBBackend) Close() error { return nil }
