package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"reliefconnect-ai-be/internal/dto"
	"reliefconnect-ai-be/internal/pkg/mailer"
	internalWS "reliefconnect-ai-be/internal/websocket"
	"reliefconnect-ai-be/pkg/events"
	pktNats "reliefconnect-ai-be/pkg/nats"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService fans each adjudication decision out to the dashboards,
// the ops mailbox and the NATS stream. All sinks are best effort.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	hub            *internalWS.Hub
	emailService   mailer.IEmailService
	supportEmail   string
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub *internalWS.Hub,
	emailService mailer.IEmailService,
	supportEmail string,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		hub:            hub,
		emailService:   emailService,
		supportEmail:   supportEmail,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.DecisionMadeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal decision message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Decision %q for order %s (fraud=%v, risk=%s)",
		payload.Decision, payload.OrderId, payload.FraudFlag, payload.FraudRiskLevel)

	if cs.hub != nil {
		cs.hub.Broadcast(payload)
	}

	cs.notifySupport(payload)
	cs.forwardToNats(ctx, payload)

	msg.Ack()
}

func (cs *consumerService) notifySupport(payload dto.DecisionMadeMessage) {
	if cs.emailService == nil {
		return
	}

	if (payload.FraudFlag || payload.Decision == "escalate") && cs.supportEmail != "" {
		if err := cs.emailService.SendFraudAlert(cs.supportEmail, payload.OrderId, payload.FraudRiskLevel, payload.Reason); err != nil {
			log.Printf("[ERROR] Failed to send fraud alert for order %s: %v", payload.OrderId, err)
		}
	}

	if payload.CustomerEmail != "" && !payload.FraudFlag {
		if err := cs.emailService.SendDecisionCopy(payload.CustomerEmail, payload.OrderId, payload.Decision, payload.PoliteMessage); err != nil {
			log.Printf("[ERROR] Failed to send decision copy for order %s: %v", payload.OrderId, err)
		}
	}
}

func (cs *consumerService) forwardToNats(ctx context.Context, payload dto.DecisionMadeMessage) {
	if cs.eventPublisher == nil {
		return
	}

	evt := events.NewDecisionMade(payload.OrderId, payload.IssueType, payload.Decision, payload.FraudRiskLevel, payload.FraudFlag)
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[ERROR] Failed to forward decision event: %v", err)
	}

	if payload.FraudFlag {
		alert := events.NewFraudAlert(payload.OrderId, payload.IssueType, payload.FraudRiskLevel, payload.Reason)
		if err := cs.eventPublisher.Publish(ctx, alert); err != nil {
			log.Printf("[ERROR] Failed to forward fraud alert: %v", err)
		}
	}
}
