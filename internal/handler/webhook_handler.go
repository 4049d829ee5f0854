package handler

import (
	"encoding/xml"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"contech_bot/internal/config"
	"contech_bot/internal/model"
	"contech_bot/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	xmlHeader          = `<?xml version="1.0" encoding="UTF-8"?>`
	msgTwilioNotConfig = "Configuração do Twilio ausente. Verifique as variáveis de ambiente."
	msgWebhookFailure  = "Erro interno ao processar a mensagem do WhatsApp."
)

// twilioWebhookForm is the subset of the Twilio inbound message payload the bot reads
type twilioWebhookForm struct {
	From      string `form:"From" binding:"required"`
	Body      string `form:"Body"`
	Latitude  string `form:"Latitude"`
	Longitude string `form:"Longitude"`
}

type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// WebhookHandler receives WhatsApp messages relayed by Twilio
type WebhookHandler struct {
	conversation service.ConversationService
	twilio       config.TwilioConfig
	logger       *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(s service.ConversationService, twilio config.TwilioConfig, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{conversation: s, twilio: twilio, logger: logger}
}

func (h *WebhookHandler) ReceiveMessage(c *gin.Context) {
	var form twilioWebhookForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if !h.twilio.Configured() {
		h.logger.Error("twilio credentials are not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgTwilioNotConfig})
		return
	}

	msg := service.InboundMessage{
		From:     form.From,
		Body:     form.Body,
		Location: parseLocation(form.Latitude, form.Longitude),
	}

	reply, err := h.conversation.HandleMessage(c.Request.Context(), msg)
	if err != nil {
		h.logger.Error("failed to handle whatsapp message",
			zap.String("from", form.From),
			zap.Bool("persistence", errors.Is(err, service.ErrPersistence)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgWebhookFailure})
		return
	}

	body, err := renderTwiML(reply)
	if err != nil {
		h.logger.Error("failed to render twiml", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgWebhookFailure})
		return
	}
	c.Data(http.StatusOK, "application/xml", body)
}

// parseLocation returns nil unless both coordinates are finite numbers in range.
func parseLocation(rawLat, rawLon string) *model.Location {
	lat, ok := parseCoordinate(rawLat)
	if !ok {
		return nil
	}
	lon, ok := parseCoordinate(rawLon)
	if !ok {
		return nil
	}
	loc := model.Location{Latitude: lat, Longitude: lon}
	if !loc.Valid() {
		return nil
	}
	return &loc
}

func parseCoordinate(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func renderTwiML(message string) ([]byte, error) {
	out, err := xml.Marshal(twimlResponse{Message: message})
	if err != nil {
		return nil, err
	}
	return append([]byte(xmlHeader), out...), nil
}

func (h *WebhookHandler) RegisterWebhookRoutes(r gin.IRouter) {
	r.POST("/webhook", h.ReceiveMessage)
}
