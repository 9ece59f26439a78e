package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"nutri_quiz/internal/domain/entities"
	"nutri_quiz/internal/domain/quiz"
	"nutri_quiz/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPatientsTableName = "patients"
	emailGuardPrefix         = "email#"
)

type patientItem struct {
	ID                string `dynamodbav:"id"`
	Name              string `dynamodbav:"name"`
	Email             string `dynamodbav:"email"`
	CPF               string `dynamodbav:"cpf"`
	Phone             string `dynamodbav:"phone"`
	QuizResponses     string `dynamodbav:"quiz_responses"`
	GatewayCustomerID string `dynamodbav:"gateway_customer_id,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
}

// emailGuardItem reserves an email inside the patients table so two
// concurrent inserts for the same lead cannot both succeed.
type emailGuardItem struct {
	ID        string `dynamodbav:"id"`
	PatientID string `dynamodbav:"patient_id"`
}

// PatientDynamoRepository persists Patient entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Besides the patient items the table holds one "email#<email>" guard item
// per lead, pointing at the patient id. quiz_responses is stored as a JSON string.

type PatientDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPatientRepository = (*PatientDynamoRepository)(nil)

func NewPatientDynamoRepository(ddb DynamoAPI, tableName string) *PatientDynamoRepository {
	if tableName == "" {
		tableName = defaultPatientsTableName
	}
	return &PatientDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PatientDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.Patient, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(emailGuardPrefix + email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Patient{}, err
	}
	if len(out.Item) == 0 {
		return entities.Patient{}, nil
	}

	var guard emailGuardItem
	if err := attributevalue.UnmarshalMap(out.Item, &guard); err != nil {
		return entities.Patient{}, err
	}
	return r.GetByID(ctx, guard.PatientID)
}

func (r *PatientDynamoRepository) GetByID(ctx context.Context, id string) (entities.Patient, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Patient{}, err
	}
	if len(out.Item) == 0 {
		return entities.Patient{}, nil
	}

	var it patientItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Patient{}, err
	}
	return fromPatientItem(it)
}

// Create writes the patient and its email guard in one transaction. A taken
// email (or id) yields interfaces.ErrPatientEmailTaken.
func (r *PatientDynamoRepository) Create(ctx context.Context, p entities.Patient) (entities.Patient, error) {
	it, err := toPatientItem(p)
	if err != nil {
		return entities.Patient{}, err
	}
	patientAV, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Patient{}, err
	}
	guardAV, err := attributevalue.MarshalMap(emailGuardItem{ID: emailGuardPrefix + p.Email, PatientID: p.ID})
	if err != nil {
		return entities.Patient{}, err
	}

	notExists := func(item map[string]types.AttributeValue) types.TransactWriteItem {
		return types.TransactWriteItem{Put: &types.Put{
			TableName:                aws.String(r.tableName),
			Item:                     item,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		}}
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{notExists(patientAV), notExists(guardAV)},
	})
	if err != nil {
		if isConditionFailure(err) {
			return entities.Patient{}, interfaces.ErrPatientEmailTaken
		}
		return entities.Patient{}, err
	}
	return p, nil
}

// Update refreshes the contact data and answers of an existing patient. The
// email and the gateway customer reference are left untouched.
func (r *PatientDynamoRepository) Update(ctx context.Context, p entities.Patient) (entities.Patient, error) {
	answers, err := marshalAnswers(p.QuizResponses)
	if err != nil {
		return entities.Patient{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(p.ID),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #name = :name, cpf = :cpf, phone = :phone, quiz_responses = :qr, updated_at = :ua"),
		ExpressionAttributeNames: map[string]string{
			"#id":   "id",
			"#name": "name",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":  &types.AttributeValueMemberS{Value: p.Name},
			":cpf":   &types.AttributeValueMemberS{Value: p.CPF},
			":phone": &types.AttributeValueMemberS{Value: p.Phone},
			":qr":    &types.AttributeValueMemberS{Value: answers},
			":ua":    &types.AttributeValueMemberS{Value: formatTime(p.UpdatedAt)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Patient{}, err
	}

	var it patientItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Patient{}, err
	}
	return fromPatientItem(it)
}

func (r *PatientDynamoRepository) SetGatewayCustomerID(ctx context.Context, patientID, customerID string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      idKey(patientID),
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		UpdateExpression:         aws.String("SET gateway_customer_id = :cid"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: customerID},
		},
	})
	return err
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func isConditionFailure(err error) bool {
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for _, reason := range tce.CancellationReasons {
			if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
				return true
			}
		}
		return false
	}
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func marshalAnswers(a quiz.Answers) (string, error) {
	if a == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("marshal quiz responses: %w", err)
	}
	return string(raw), nil
}

func unmarshalAnswers(s string) (quiz.Answers, error) {
	a := quiz.Answers{}
	if s == "" {
		return a, nil
	}
	if err := json.Unmarshal([]byte(s), &a); err != nil {
		return nil, fmt.Errorf("unmarshal quiz responses: %w", err)
	}
	return a, nil
}

func toPatientItem(p entities.Patient) (patientItem, error) {
	answers, err := marshalAnswers(p.QuizResponses)
	if err != nil {
		return patientItem{}, err
	}
	return patientItem{
		ID:                p.ID,
		Name:              p.Name,
		Email:             p.Email,
		CPF:               p.CPF,
		Phone:             p.Phone,
		QuizResponses:     answers,
		GatewayCustomerID: p.GatewayCustomerID,
		CreatedAt:         formatTime(p.CreatedAt),
		UpdatedAt:         formatTime(p.UpdatedAt),
	}, nil
}

func fromPatientItem(it patientItem) (entities.Patient, error) {
	answers, err := unmarshalAnswers(it.QuizResponses)
	if err != nil {
		return entities.Patient{}, err
	}
	return entities.Patient{
		ID:                it.ID,
		Name:              it.Name,
		Email:             it.Email,
		CPF:               it.CPF,
		Phone:             it.Phone,
		QuizResponses:     answers,
		GatewayCustomerID: it.GatewayCustomerID,
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}, nil
}
