// Package messagedelivery manages delivery layer of chat messages.
package messagedelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/peerwallet/peerwallet/internal/domain"
	"github.com/peerwallet/peerwallet/internal/middleware"
	"github.com/peerwallet/peerwallet/pkg/errorspkg"
	"github.com/peerwallet/peerwallet/pkg/tokenpkg"
	"github.com/peerwallet/peerwallet/pkg/web"
)

// Service provides service layer interface needed by message delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package messagedelivery
type Service interface {
	Send(ctx context.Context, sender, receiver, content string) (domain.Message, error)
	Conversation(ctx context.Context, user1, user2 string, pageSize, pageID int32) ([]domain.Message, error)
	Inbox(ctx context.Context, receiver string, pageSize, pageID int32) ([]domain.Message, error)
}

// Handler facilitates message delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns message handler.
func NewHandler(ms Service) *Handler {
	return &Handler{service: ms}
}

type messageData struct {
	Message domain.Message `json:"message"`
}

type messagesData struct {
	Messages []domain.Message `json:"messages"`
}

type sendRequest struct {
	Receiver string `json:"receiver" binding:"required,alphanum"`
	Content  string `json:"content" binding:"required"`
}

// Send handles http request to send a direct message.
func (h *Handler) Send(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req sendRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	message, err := h.service.Send(ctx, authPayload.Username, req.Receiver, req.Content)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrMessageParticipantNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrEmptyMessage:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: messageData{message}})
}

type conversationRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

// Conversation handles http request to get chat history with another user.
func (h *Handler) Conversation(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req conversationRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)
	other := gctx.Param("username")

	messages, err := h.service.Conversation(ctx, authPayload.Username, other, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: messagesData{messages}})
}

// Inbox handles http request to get the caller's received messages.
func (h *Handler) Inbox(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req conversationRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	messages, err := h.service.Inbox(ctx, authPayload.Username, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: messagesData{messages}})
}
