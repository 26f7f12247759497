package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"reliefconnect-ai-be/internal/dto"
	"reliefconnect-ai-be/internal/model"
	"reliefconnect-ai-be/internal/pkg/logger"
	"reliefconnect-ai-be/internal/repository/contract"
	"reliefconnect-ai-be/pkg/ai/pipeline"
)

type IOrderService interface {
	Report(ctx context.Context, req *dto.ReportRequest) (*dto.ReportResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, userId uuid.UUID, orderId uuid.UUID) (*dto.OrderResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.OrderResponse, error)
}

type orderService struct {
	orderRepo        contract.OrderRepository
	pipeline         *pipeline.OrderPipeline
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewOrderService(
	orderRepo contract.OrderRepository,
	orderPipeline *pipeline.OrderPipeline,
	publisherService IPublisherService,
	log logger.ILogger,
) IOrderService {
	return &orderService{
		orderRepo:        orderRepo,
		pipeline:         orderPipeline,
		publisherService: publisherService,
		logger:           log,
	}
}

// Report adjudicates one order issue and emits a decision event. Event
// delivery is best effort; a bus failure never fails the request.
func (s *orderService) Report(ctx context.Context, req *dto.ReportRequest) (*dto.ReportResponse, error) {
	image, err := decodeImage(req.Image)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid base64 image")
	}

	issue := &pipeline.OrderIssue{
		Order:     req.Order,
		Problem:   req.OrderProblem,
		IssueType: req.IssueType,
		Image:     image,
	}

	result, err := s.pipeline.Run(ctx, issue)
	if err != nil {
		return nil, err
	}

	s.publishDecision(ctx, req, result.Decision)

	return &dto.ReportResponse{
		FraudResult: result.FraudResult,
		ImageResult: result.ImageResult,
		Decision:    result.Decision,
	}, nil
}

func (s *orderService) publishDecision(ctx context.Context, req *dto.ReportRequest, decision *pipeline.Decision) {
	orderID, _ := req.Order["id"].(string)
	customerEmail, _ := req.Order["email"].(string)

	msg := dto.DecisionMadeMessage{
		OrderId:        orderID,
		IssueType:      req.IssueType,
		Decision:       decision.Decision,
		Reason:         decision.Reason,
		PoliteMessage:  decision.PoliteMessage,
		FraudFlag:      decision.FraudFlag,
		FraudRiskLevel: decision.FraudRiskLevel,
		CustomerEmail:  customerEmail,
		OccurredAt:     time.Now(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("OrderService", "Failed to marshal decision event", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Error("OrderService", "Failed to publish decision event", map[string]interface{}{
			"order_id": orderID,
			"error":    err.Error(),
		})
	}
}

func (s *orderService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	itemsJSON, err := json.Marshal(req.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	paymentJSON, err := json.Marshal(req.Payment)
	if err != nil {
		return nil, fmt.Errorf("marshal payment: %w", err)
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = "medium"
	}

	order := model.Order{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		Urgency:   urgency,
		Payment:   datatypes.JSON(paymentJSON),
		Items:     datatypes.JSON(itemsJSON),
		IsPackage: req.IsPackage,
		Timestamp: time.Now(),
	}

	if err := s.orderRepo.Create(ctx, &order); err != nil {
		return nil, err
	}

	return toOrderResponse(&order), nil
}

func (s *orderService) Get(ctx context.Context, userId uuid.UUID, orderId uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindById(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserId != userId {
		return nil, fiber.NewError(fiber.StatusNotFound, "order not found")
	}
	return toOrderResponse(order), nil
}

func (s *orderService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.OrderResponse, error) {
	orders, err := s.orderRepo.FindAllByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		res = append(res, toOrderResponse(order))
	}
	return res, nil
}

// decodeImage accepts a bare base64 string or a data URI
// ("data:image/jpeg;base64,...").
func decodeImage(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	if strings.HasPrefix(encoded, "data:") {
		if idx := strings.Index(encoded, ","); idx != -1 {
			encoded = encoded[idx+1:]
		}
	}
	return base64.StdEncoding.DecodeString(encoded)
}

func toOrderResponse(order *model.Order) *dto.OrderResponse {
	var items []dto.OrderItemDTO
	_ = json.Unmarshal(order.Items, &items)

	var payment map[string]interface{}
	_ = json.Unmarshal(order.Payment, &payment)

	return &dto.OrderResponse{
		Id:        order.Id,
		Name:      order.Name,
		Address:   order.Address,
		Phone:     order.Phone,
		Email:     order.Email,
		Urgency:   order.Urgency,
		Payment:   payment,
		Items:     items,
		IsPackage: order.IsPackage,
		Timestamp: order.Timestamp,
	}
}
