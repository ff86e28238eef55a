package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/chainsight/site-api/internal/db"
	"github.com/chainsight/site-api/internal/waitlist"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type JoinWaitlistRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	Email   string `json:"email" binding:"required,email"`
	Company string `json:"company" binding:"max=255"`
	Region  string `json:"region" binding:"omitempty,oneof=mena south-asia africa other"`
}

func (h *Handler) JoinWaitlist(c *gin.Context) {
	var req JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := &db.WaitlistEntry{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Region:  req.Region,
	}

	if err := h.waitlist.Join(c.Request.Context(), entry); err != nil {
		if errors.Is(err, waitlist.ErrAlreadyRegistered) {
			h.metrics.RecordWaitlistSignup("duplicate")
			c.JSON(http.StatusConflict, gin.H{
				"status":  "already_registered",
				"message": "This email is already registered for early access.",
			})
			return
		}

		h.logger.Error("Failed to join waitlist", zap.Error(err))
		h.metrics.RecordWaitlistSignup("error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again later."})
		return
	}

	h.metrics.RecordWaitlistSignup("joined")
	c.JSON(http.StatusCreated, gin.H{
		"status":  "joined",
		"message": "Welcome to the ChainSight Beta Waitlist! Check your email for confirmation details.",
	})
}

type BookDemoRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=255"`
	Email         string `json:"email" binding:"required,email"`
	Company       string `json:"company" binding:"required,max=255"`
	Phone         string `json:"phone" binding:"max=50"`
	PreferredDate string `json:"preferred_date" binding:"max=100"`
}

func (h *Handler) BookDemo(c *gin.Context) {
	var req BookDemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	demo := &db.DemoRequest{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Email:         req.Email,
		Company:       req.Company,
		Phone:         req.Phone,
		PreferredDate: req.PreferredDate,
		CreatedAt:     time.Now(),
	}

	if err := h.repo.CreateDemoRequest(demo); err != nil {
		h.logger.Error("Failed to save demo request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again later."})
		return
	}

	h.metrics.RecordDemoRequest()
	c.JSON(http.StatusCreated, gin.H{
		"status":  "booked",
		"message": "Thanks! Our team will reach out to schedule your demo.",
	})
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,min=1,max=5000"`
}

func (h *Handler) Contact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := &db.ContactMessage{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: time.Now(),
	}

	if err := h.repo.CreateContactMessage(msg); err != nil {
		h.logger.Error("Failed to save contact message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again later."})
		return
	}

	h.metrics.RecordContactMessage()
	c.JSON(http.StatusCreated, gin.H{
		"status":  "sent",
		"message": "Thanks for reaching out. We'll get back to you shortly.",
	})
}
