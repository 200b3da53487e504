package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/pianocoach/model"
	"go.uber.org/zap"
)

const (
	dynamoSessionPrefix = "session#"
	dynamoRecentNotesPK = "notes#recent"

	// concurrent writers to one session lose a conditional put and retry
	maxConditionalRetries = 5
)

var ErrConflict = errors.New("too many concurrent updates")

type DynamoConfig struct {
	Endpoint string
	Region   string
	Table    string
}

type sessionItem struct {
	PK      string        `dynamodbav:"PK"`
	Version int64         `dynamodbav:"Version"`
	Session model.Session `dynamodbav:"Session"`
}

type recentNotesItem struct {
	PK      string      `dynamodbav:"PK"`
	Version int64       `dynamodbav:"Version"`
	Notes   model.Notes `dynamodbav:"Notes"`
}

// DynamoStore keeps one item per session plus one item for the recent-notes
// feed in a single table keyed by the string attribute PK. Writes use a
// Version attribute for optimistic locking.
type DynamoStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
	log    *zap.Logger
}

func NewDynamoStore(cfg DynamoConfig, log *zap.Logger) (*DynamoStore, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return NewDynamoStoreWithClient(dynamodb.New(sess), cfg.Table, log), nil
}

func NewDynamoStoreWithClient(client dynamodbiface.DynamoDBAPI, table string, log *zap.Logger) *DynamoStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &DynamoStore{client: client, table: table, log: log}
}

func pkKey(pk string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"PK": {S: aws.String(pk)},
	}
}

func (d *DynamoStore) getItem(ctx context.Context, pk string, out any) (bool, error) {
	res, err := d.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.table),
		Key:            pkKey(pk),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, fmt.Errorf("error from DynamoDB: %w", err)
	}
	if len(res.Item) == 0 {
		return false, nil
	}
	if err := dynamodbattribute.UnmarshalMap(res.Item, out); err != nil {
		return false, fmt.Errorf("decode item %v: %w", pk, err)
	}
	return true, nil
}

// putVersioned writes item only if the stored Version still equals expected
// (or nothing is stored yet when expected is 0).
func (d *DynamoStore) putVersioned(ctx context.Context, item any, expected int64) error {
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("encode item: %w", err)
	}
	_, err = d.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK) OR Version = :v"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":v": {N: aws.String(strconv.FormatInt(expected, 10))},
		},
	})
	return err
}

func isConditionFailed(err error) bool {
	var aerr awserr.Error
	return errors.As(err, &aerr) && aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException
}

func (d *DynamoStore) GetSession(ctx context.Context, id string) (model.Session, error) {
	var item sessionItem
	found, err := d.getItem(ctx, dynamoSessionPrefix+id, &item)
	if err != nil {
		return model.Session{}, err
	}
	if !found {
		return model.Session{}, ErrSessionNotFound
	}
	item.Session.Id = id
	return item.Session, nil
}

func (d *DynamoStore) GetSessions(ctx context.Context) (model.SessionsById, error) {
	res := make(model.SessionsById)
	var decodeErr error
	input := &dynamodb.ScanInput{
		TableName:        aws.String(d.table),
		FilterExpression: aws.String("begins_with(PK, :prefix)"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":prefix": {S: aws.String(dynamoSessionPrefix)},
		},
	}
	err := d.client.ScanPagesWithContext(ctx, input, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		for _, raw := range page.Items {
			var item sessionItem
			if err := dynamodbattribute.UnmarshalMap(raw, &item); err != nil {
				decodeErr = fmt.Errorf("decode session item: %w", err)
				return false
			}
			id := strings.TrimPrefix(item.PK, dynamoSessionPrefix)
			item.Session.Id = id
			res[id] = item.Session
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return res, nil
}

func (d *DynamoStore) UpdateSession(ctx context.Context, id string, fn UpdateFunc) error {
	pk := dynamoSessionPrefix + id
	for attempt := 0; attempt < maxConditionalRetries; attempt++ {
		var item sessionItem
		exists, err := d.getItem(ctx, pk, &item)
		if err != nil {
			return err
		}
		if !exists {
			item = sessionItem{PK: pk, Session: model.Session{Id: id}}
		}

		expected := item.Version
		fn(&item.Session, exists)
		item.Session.Id = id
		item.Version = expected + 1

		err = d.putVersioned(ctx, item, expected)
		if err == nil {
			return nil
		}
		if !isConditionFailed(err) {
			return fmt.Errorf("error from DynamoDB: %w", err)
		}
		d.log.Debug("session changed underneath update, retrying",
			zap.String("session_id", id), zap.Int("attempt", attempt+1))
	}
	return fmt.Errorf("update session %v: %w", id, ErrConflict)
}

func (d *DynamoStore) PushRecentNote(ctx context.Context, note model.NoteEvent) error {
	for attempt := 0; attempt < maxConditionalRetries; attempt++ {
		var item recentNotesItem
		if _, err := d.getItem(ctx, dynamoRecentNotesPK, &item); err != nil {
			return err
		}
		expected := item.Version
		item.PK = dynamoRecentNotesPK
		item.Notes = pushRing(item.Notes, note)
		item.Version = expected + 1

		err := d.putVersioned(ctx, item, expected)
		if err == nil {
			return nil
		}
		if !isConditionFailed(err) {
			return fmt.Errorf("error from DynamoDB: %w", err)
		}
	}
	return fmt.Errorf("push recent note: %w", ErrConflict)
}

func (d *DynamoStore) RecentNotes(ctx context.Context) (model.Notes, error) {
	var item recentNotesItem
	if _, err := d.getItem(ctx, dynamoRecentNotesPK, &item); err != nil {
		return nil, err
	}
	if item.Notes == nil {
		return model.Notes{}, nil
	}
	return item.Notes, nil
}
