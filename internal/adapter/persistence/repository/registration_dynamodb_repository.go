package repository

import (
	"context"
	"errors"
	"time"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultRegistrationsTableName = "registrations"

type registrationItem struct {
	ID              string `dynamodbav:"id"`
	EventID         string `dynamodbav:"event_id"`
	UserID          string `dynamodbav:"user_id"`
	AmountDue       int64  `dynamodbav:"amount_due"`
	Currency        string `dynamodbav:"currency"`
	Status          string `dynamodbav:"status"`
	TicketIssuedAt  string `dynamodbav:"ticket_issued_at,omitempty"`
	TicketPaymentID string `dynamodbav:"ticket_payment_id,omitempty"`
	CreatedAt       string `dynamodbav:"created_at"`
	UpdatedAt       string `dynamodbav:"updated_at"`
}

type RegistrationDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IRegistrationRepository = (*RegistrationDynamoRepository)(nil)

func NewRegistrationDynamoRepository(ddb *dynamodb.Client) *RegistrationDynamoRepository {
	return &RegistrationDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("REGISTRATIONS_TABLE", defaultRegistrationsTableName),
	}
}

func (r *RegistrationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Registration, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Registration{}, err
	}
	if len(out.Item) == 0 {
		return entities.Registration{}, nil
	}

	var it registrationItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Registration{}, err
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Registration{
		ID:             it.ID,
		EventID:        it.EventID,
		UserID:         it.UserID,
		AmountDue:      it.AmountDue,
		Currency:       it.Currency,
		Status:         entities.RegistrationStatus(it.Status),
		TicketIssuedAt: parseTimePtr(it.TicketIssuedAt),
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}

// MarkTicketIssued stamps ticket issuance at most once per registration. The
// write is conditioned on the stamp being absent, so replays and concurrent
// completions observe false, nil instead of issuing a second ticket.
func (r *RegistrationDynamoRepository) MarkTicketIssued(ctx context.Context, registrationID, paymentID string) (bool, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: registrationID},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND attribute_not_exists(#issued)"),
		UpdateExpression:    aws.String("SET #issued = :now, #tpid = :pid, #status = :confirmed, #updated = :now"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#issued":  "ticket_issued_at",
			"#tpid":    "ticket_payment_id",
			"#status":  "status",
			"#updated": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now":       &types.AttributeValueMemberS{Value: now},
			":pid":       &types.AttributeValueMemberS{Value: paymentID},
			":confirmed": &types.AttributeValueMemberS{Value: string(entities.RegistrationStatusConfirmed)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
