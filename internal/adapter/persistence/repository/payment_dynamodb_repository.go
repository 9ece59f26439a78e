package repository

import (
	"context"
	"fmt"

	"nutri_quiz/internal/domain/entities"
	"nutri_quiz/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsPatientIDIndex   = "patient_id-index"
)

type paymentItem struct {
	ID                string `dynamodbav:"id"`
	PatientID         string `dynamodbav:"patient_id"`
	Provider          string `dynamodbav:"provider"`
	GatewayPaymentID  string `dynamodbav:"gateway_payment_id"`
	GatewayCustomerID string `dynamodbav:"gateway_customer_id"`
	Amount            string `dynamodbav:"amount"`
	DueDate           string `dynamodbav:"due_date"`
	Status            string `dynamodbav:"status"`
	PaymentURL        string `dynamodbav:"payment_url"`
	CreatedAt         string `dynamodbav:"created_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB. Items are
// never updated once written.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: patient_id-index (PK: patient_id)

type PaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoAPI, tableName string) *PaymentDynamoRepository {
	if tableName == "" {
		tableName = defaultPaymentsTableName
	}
	return &PaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
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

func (r *PaymentDynamoRepository) ListByPatientID(ctx context.Context, patientID string) ([]entities.Payment, error) {
	items := make([]entities.Payment, 0)
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(paymentsPatientIDIndex),
			KeyConditionExpression: aws.String("patient_id = :pid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pid": &types.AttributeValueMemberS{Value: patientID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}

		for _, raw := range out.Items {
			var it paymentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			p, err := fromPaymentItem(it)
			if err != nil {
				return nil, err
			}
			items = append(items, p)
		}

		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                p.ID,
		PatientID:         p.PatientID,
		Provider:          p.Provider,
		GatewayPaymentID:  p.GatewayPaymentID,
		GatewayCustomerID: p.GatewayCustomerID,
		Amount:            p.Amount.StringFixed(2),
		DueDate:           p.DueDate,
		Status:            p.Status,
		PaymentURL:        p.PaymentURL,
		CreatedAt:         formatTime(p.CreatedAt),
	}
}

func fromPaymentItem(it paymentItem) (entities.Payment, error) {
	amount, err := decimal.NewFromString(it.Amount)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("payment %s amount: %w", it.ID, err)
	}
	return entities.Payment{
		ID:                it.ID,
		PatientID:         it.PatientID,
		Provider:          it.Provider,
		GatewayPaymentID:  it.GatewayPaymentID,
		GatewayCustomerID: it.GatewayCustomerID,
		Amount:            amount,
		DueDate:           it.DueDate,
		Status:            it.Status,
		PaymentURL:        it.PaymentURL,
		CreatedAt:         parseTime(it.CreatedAt),
	}, nil
}
