package db

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/engraver/model"
	"github.com/pkg/errors"
)

// Store keeps engraved scores in a DynamoDB table keyed by score id.
type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

type scoreItem struct {
	PK          string  `dynamodbav:"PK"`
	Bpm         float64 `dynamodbav:"Bpm"`
	NumMeasures int     `dynamodbav:"NumMeasures"`
	NumNotes    int     `dynamodbav:"NumNotes"`
	Score       string  `dynamodbav:"Score"`
}

func NewStore(endpoint string, table string) (*Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return NewStoreWithClient(dynamodb.New(sess), table), nil
}

func NewStoreWithClient(client dynamodbiface.DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table}
}

func (s *Store) PutScore(res model.EngraveResponse) error {
	score, err := json.Marshal(res)
	if err != nil {
		return errors.Wrap(err, "could not encode score")
	}
	item, err := dynamodbattribute.MarshalMap(scoreItem{
		PK:          res.ScoreId,
		Bpm:         res.Bpm,
		NumMeasures: res.Summary.NumMeasures,
		NumNotes:    res.Summary.NumNotes,
		Score:       string(score),
	})
	if err != nil {
		return errors.Wrap(err, "could not marshal score item")
	}

	_, err = s.client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return errors.Wrap(err, "error from DynamoDB")
}

// GetScore loads a score by id. The bool is false when no such score exists.
func (s *Store) GetScore(id string) (model.EngraveResponse, bool, error) {
	var res model.EngraveResponse
	out, err := s.client.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		},
	})
	if err != nil {
		return res, false, errors.Wrap(err, "error from DynamoDB")
	}
	if len(out.Item) == 0 {
		return res, false, nil
	}

	var item scoreItem
	if err := dynamodbattribute.UnmarshalMap(out.Item, &item); err != nil {
		return res, false, errors.Wrap(err, "could not unmarshal score item")
	}
	if err := json.Unmarshal([]byte(item.Score), &res); err != nil {
		return res, false, errors.Wrap(err, "could not decode score")
	}
	return res, true, nil
}
