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

const (
	defaultPaymentsTableName = "payments"
	paymentsReferenceIndex   = "payment_reference-index"
	paymentsRegistrationIdx  = "registration_id-index"
)

type paymentItem struct {
	ID               string                    `dynamodbav:"id"`
	RegistrationID   string                    `dynamodbav:"registration_id"`
	EventID          string                    `dynamodbav:"event_id"`
	UserID           string                    `dynamodbav:"user_id"`
	Gateway          string                    `dynamodbav:"gateway"`
	Amount           int64                     `dynamodbav:"amount"`
	Currency         string                    `dynamodbav:"currency"`
	PaymentReference string                    `dynamodbav:"payment_reference"`
	GatewayTxnID     string                    `dynamodbav:"gateway_transaction_id,omitempty"`
	Status           string                    `dynamodbav:"status"`
	RefundedAmount   int64                     `dynamodbav:"refunded_amount"`
	GatewayResponse  map[string]map[string]any `dynamodbav:"gateway_response"`
	PaidAt           string                    `dynamodbav:"paid_at,omitempty"`
	FailedAt         string                    `dynamodbav:"failed_at,omitempty"`
	RefundedAt       string                    `dynamodbav:"refunded_at,omitempty"`
	CreatedAt        string                    `dynamodbav:"created_at"`
	UpdatedAt        string                    `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: payment_reference-index (PK: payment_reference)
//   - GSI: registration_id-index (PK: registration_id)
//
// Status transitions and refund records are conditional writes on the current
// status so concurrent confirmation deliveries resolve to exactly one winner.

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	it := toPaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) GetByReference(ctx context.Context, reference string) (entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsReferenceIndex),
		KeyConditionExpression: aws.String("payment_reference = :ref"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: reference},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Items) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByRegistrationID(ctx context.Context, registrationID string) ([]entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsRegistrationIdx),
		KeyConditionExpression: aws.String("registration_id = :rid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid": &types.AttributeValueMemberS{Value: registrationID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Payment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentItem(it))
	}
	return items, nil
}

// AppendGatewayResponse writes one evidence namespace. Other namespaces are
// untouched by the nested SET, which is what keeps concurrent channels from
// clobbering each other's evidence.
func (r *PaymentDynamoRepository) AppendGatewayResponse(ctx context.Context, id, namespace string, data map[string]any) error {
	av, err := attributevalue.Marshal(data)
	if err != nil {
		return err
	}

	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #gr.#ns = :v, #updated = :u"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#gr":      "gateway_response",
			"#ns":      namespace,
			"#updated": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": av,
			":u": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	})
	return err
}

// TransitionStatus applies from -> to only while the stored status still
// equals from. A failed condition is not an error: it means a concurrent
// delivery already moved the payment.
func (r *PaymentDynamoRepository) TransitionStatus(ctx context.Context, id string, from, to entities.PaymentStatus, update entities.PaymentStatusUpdate) (bool, error) {
	names := map[string]string{
		"#status":  "status",
		"#updated": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":from": &types.AttributeValueMemberS{Value: string(from)},
		":to":   &types.AttributeValueMemberS{Value: string(to)},
		":u":    &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
	}
	expr := "SET #status = :to, #updated = :u"

	if update.GatewayTxnID != "" {
		names["#txn"] = "gateway_transaction_id"
		values[":txn"] = &types.AttributeValueMemberS{Value: update.GatewayTxnID}
		expr += ", #txn = :txn"
	}
	if update.PaidAt != nil {
		names["#paid"] = "paid_at"
		values[":paid"] = &types.AttributeValueMemberS{Value: update.PaidAt.UTC().Format(time.RFC3339Nano)}
		expr += ", #paid = :paid"
	}
	if update.FailedAt != nil {
		names["#failed"] = "failed_at"
		values[":failed"] = &types.AttributeValueMemberS{Value: update.FailedAt.UTC().Format(time.RFC3339Nano)}
		expr += ", #failed = :failed"
	}
	if update.RefundedAt != nil {
		names["#refunded"] = "refunded_at"
		values[":refunded"] = &types.AttributeValueMemberS{Value: update.RefundedAt.UTC().Format(time.RFC3339Nano)}
		expr += ", #refunded = :refunded"
	}

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("#status = :from"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
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

// RecordRefund accumulates the refunded amount; the write is conditioned on
// the payment still being completed so a refund can never land twice in full.
func (r *PaymentDynamoRepository) RecordRefund(ctx context.Context, id string, refundedAmount int64, toStatus entities.PaymentStatus) (bool, error) {
	names := map[string]string{
		"#status":   "status",
		"#refunded": "refunded_amount",
		"#updated":  "updated_at",
	}
	values := map[string]types.AttributeValue{
		":completed": &types.AttributeValueMemberS{Value: string(entities.PaymentStatusCompleted)},
		":ra":        &types.AttributeValueMemberN{Value: formatInt64(refundedAmount)},
		":to":        &types.AttributeValueMemberS{Value: string(toStatus)},
		":u":         &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
	}
	expr := "SET #refunded = :ra, #status = :to, #updated = :u"
	if toStatus == entities.PaymentStatusRefunded {
		names["#rat"] = "refunded_at"
		values[":rat"] = &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)}
		expr += ", #rat = :rat"
	}

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("#status = :completed"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
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

func toPaymentItem(p entities.Payment) paymentItem {
	gr := p.GatewayResponse
	if gr == nil {
		gr = entities.GatewayResponse{}
	}
	return paymentItem{
		ID:               p.ID,
		RegistrationID:   p.RegistrationID,
		EventID:          p.EventID,
		UserID:           p.UserID,
		Gateway:          p.Gateway,
		Amount:           p.Amount,
		Currency:         p.Currency,
		PaymentReference: p.PaymentReference,
		GatewayTxnID:     p.GatewayTxnID,
		Status:           string(p.Status),
		RefundedAmount:   p.RefundedAmount,
		GatewayResponse:  gr,
		PaidAt:           formatTimePtr(p.PaidAt),
		FailedAt:         formatTimePtr(p.FailedAt),
		RefundedAt:       formatTimePtr(p.RefundedAt),
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:        p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Payment{
		ID:               it.ID,
		RegistrationID:   it.RegistrationID,
		EventID:          it.EventID,
		UserID:           it.UserID,
		Gateway:          it.Gateway,
		Amount:           it.Amount,
		Currency:         it.Currency,
		PaymentReference: it.PaymentReference,
		GatewayTxnID:     it.GatewayTxnID,
		Status:           entities.PaymentStatus(it.Status),
		RefundedAmount:   it.RefundedAmount,
		GatewayResponse:  it.GatewayResponse,
		PaidAt:           parseTimePtr(it.PaidAt),
		FailedAt:         parseTimePtr(it.FailedAt),
		RefundedAt:       parseTimePtr(it.RefundedAt),
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}
