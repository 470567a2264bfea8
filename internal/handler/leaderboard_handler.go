package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/hameema-git/ramzan-challange/internal/service"
	"github.com/hameema-git/ramzan-challange/pkg/logger"
	"github.com/hameema-git/ramzan-challange/pkg/response"
)

type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
	redisClient        *redis.Client
	upgrader           websocket.Upgrader
}

func NewLeaderboardHandler(leaderboardService service.LeaderboardService, redisClient *redis.Client) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		redisClient:        redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for now
			},
		},
	}
}

func (h *LeaderboardHandler) Global(c *gin.Context) {
	board, err := h.leaderboardService.Global(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": board})
}

func (h *LeaderboardHandler) MyRank(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	rank, err := h.leaderboardService.MyRank(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rank})
}

// HandleWebSocket streams leaderboard events to the client. Each saved
// record publishes one event; clients refetch the board on receipt.
func (h *LeaderboardHandler) HandleWebSocket(c *gin.Context) {
	if _, err := response.GetUserID(c); err != nil {
		response.ResponseError(c, err)
		return
	}

	if h.redisClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live updates are not available"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warn("failed to upgrade websocket", logger.Err(err))
		return
	}
	defer conn.Close()

	pubsub := h.redisClient.Subscribe(c.Request.Context(), service.LeaderboardEventsChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(c.Request.Context()); err != nil {
		logger.Log.Warn("failed to subscribe to leaderboard events", logger.Err(err))
		return
	}

	ch := pubsub.Channel()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-ch:
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-clientClosed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
