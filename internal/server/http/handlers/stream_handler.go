package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/notify"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/usecase"
)

const (
	// EventName is the server-sent event name carrying order status changes.
	EventName = "order_update"

	defaultKeepAlive = 15 * time.Second
)

// StreamHandler pushes order status events over server-sent events.
type StreamHandler struct {
	facade    StreamFacade
	keepAlive time.Duration
}

// NewStreamHandler constructs StreamHandler. A non-positive keepAlive uses the default.
func NewStreamHandler(facade StreamFacade, keepAlive time.Duration) *StreamHandler {
	if keepAlive <= 0 {
		keepAlive = defaultKeepAlive
	}
	return &StreamHandler{facade: facade, keepAlive: keepAlive}
}

// Canteen handles GET /api/stream/canteen/:canteen_id.
func (h *StreamHandler) Canteen(c *gin.Context) {
	canteenID := c.Param("canteen_id")
	if err := usecase.AuthorizeCanteen(CurrentActor(c), canteenID); err != nil {
		writeError(c, err)
		return
	}
	h.serve(c, notify.CanteenChannel(canteenID))
}

// Student handles GET /api/stream/student.
func (h *StreamHandler) Student(c *gin.Context) {
	h.serve(c, notify.StudentChannel(CurrentActor(c).UserID))
}

func (h *StreamHandler) serve(c *gin.Context, ch notify.Channel) {
	sub := h.facade.Subscribe(ch, uuid.NewString())
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent(EventName, ev)
			return true
		case <-ticker.C:
			_, err := io.WriteString(w, ": keep-alive\n\n")
			return err == nil
		}
	})
}
