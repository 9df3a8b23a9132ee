package simulator

import (
	"fmt"
	"strings"
	"time"

	"github.com/rasoihub/tiffinbox/internal/models"
	"github.com/xitongsys/parquet-go/schema"
)

const (
	TopicOrderSubmitted = "order_submitted_events"
	TopicOrderRejected  = "order_rejected_events"
)

// OrderSubmittedEvent is the flattened record of one successful
// submission, shaped for the columnar sinks.
type OrderSubmittedEvent struct {
	Timestamp      int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType      string  `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	SubmissionID   string  `json:"submissionId" parquet:"name=submissionId,type=BYTE_ARRAY,convertedtype=UTF8"`
	SessionID      string  `json:"sessionId" parquet:"name=sessionId,type=BYTE_ARRAY,convertedtype=UTF8"`
	CustomerID     string  `json:"customerId" parquet:"name=customerId,type=BYTE_ARRAY,convertedtype=UTF8"`
	MenuID         string  `json:"menuId" parquet:"name=menuId,type=BYTE_ARRAY,convertedtype=UTF8"`
	MenuName       string  `json:"menuName" parquet:"name=menuName,type=BYTE_ARRAY,convertedtype=UTF8"`
	FulfilmentMode string  `json:"fulfilmentMode" parquet:"name=fulfilmentMode,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderMode      string  `json:"orderMode" parquet:"name=orderMode,type=BYTE_ARRAY,convertedtype=UTF8"`
	DeliveryDates  string  `json:"deliveryDates" parquet:"name=deliveryDates,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderTimes     string  `json:"orderTimes" parquet:"name=orderTimes,type=BYTE_ARRAY,convertedtype=UTF8"`
	LineItems      int64   `json:"lineItems" parquet:"name=lineItems,type=INT64"`
	TotalItems     int64   `json:"totalItems" parquet:"name=totalItems,type=INT64"`
	TotalPrice     float64 `json:"totalPrice" parquet:"name=totalPrice,type=DOUBLE"`
	Warnings       string  `json:"warnings,omitempty" parquet:"name=warnings,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// OrderRejectedEvent records a booking the validation gate turned away.
type OrderRejectedEvent struct {
	Timestamp  int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType  string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	SessionID  string `json:"sessionId" parquet:"name=sessionId,type=BYTE_ARRAY,convertedtype=UTF8"`
	CustomerID string `json:"customerId" parquet:"name=customerId,type=BYTE_ARRAY,convertedtype=UTF8"`
	MenuID     string `json:"menuId,omitempty" parquet:"name=menuId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Reason     string `json:"reason" parquet:"name=reason,type=BYTE_ARRAY,convertedtype=UTF8"`
}

func NewOrderSubmittedEvent(sub *models.OrderSubmission, totalItems int) OrderSubmittedEvent {
	cfg := sub.Configuration
	dates := make([]string, len(cfg.SelectedDates))
	for i, d := range cfg.SelectedDates {
		dates[i] = d.Key()
	}
	return OrderSubmittedEvent{
		Timestamp:      sub.SubmittedAt.Unix(),
		EventType:      "order_submitted",
		SubmissionID:   sub.ID,
		SessionID:      cfg.SessionID,
		CustomerID:     cfg.CustomerID,
		MenuID:         cfg.Menu.ID,
		MenuName:       cfg.Menu.Name,
		FulfilmentMode: cfg.Classification.Mode,
		OrderMode:      cfg.OrderMode,
		DeliveryDates:  strings.Join(dates, ","),
		OrderTimes:     strings.Join(sub.OrderTimes, ","),
		LineItems:      int64(len(sub.OrderItems)),
		TotalItems:     int64(totalItems),
		TotalPrice:     sub.TotalPrice,
		Warnings:       strings.Join(sub.Warnings, "; "),
	}
}

func NewOrderRejectedEvent(sessionID, customerID, menuID string, reason error, at time.Time) OrderRejectedEvent {
	return OrderRejectedEvent{
		Timestamp:  at.Unix(),
		EventType:  "order_rejected",
		SessionID:  sessionID,
		CustomerID: customerID,
		MenuID:     menuID,
		Reason:     reason.Error(),
	}
}

func GetSchema(topic string) (*schema.SchemaHandler, error) {
	switch topic {
	case TopicOrderSubmitted:
		return schema.NewSchemaHandlerFromStruct(new(OrderSubmittedEvent))
	case TopicOrderRejected:
		return schema.NewSchemaHandlerFromStruct(new(OrderRejectedEvent))
	default:
		return nil, fmt.Errorf("unknown topic: %s", topic)
	}
}
