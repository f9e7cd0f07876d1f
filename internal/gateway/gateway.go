package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/tambola-games/tambola-backend/internal/models"
	"github.com/tambola-games/tambola-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Inbound and outbound event names. These are wire contract; existing
// clients dispatch on them.
const (
	evJoinGame       = "joinGame"
	evJoinGameClient = "joinGameClient"
	evLeaveGame      = "leaveGame"
	evLive           = "live"
	evDealt          = "dealt"
	evClaim          = "claim"
	evLeaderboard    = "leaderboard"

	evPayload         = "payload"
	evJoinedGame      = "joinedGame"
	evJoinedGameError = "joinedGameError"
	evLeftGame        = "leftGame"
	evLiveRes         = "liveRes"
	evDealEvent       = "dealEvent"
	evOnDealt         = "onDealt"
	evCounter         = "counter"
	evStopped         = "stopped"
	evLeaderboardRes  = "leaderboardRes"
	evClaimSuccessRes = "claimSuccessRes"
	evClaimResponse   = "claimResponse"
	evWsError         = "WsError"
)

// Envelope is the framed form of every websocket message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Gateway dispatches inbound events to the services and implements
// services.Publisher for the dealing loop's outbound stream.
type Gateway struct {
	hub      *Hub
	gameSvc  *services.GameService
	sheetSvc *services.SheetService
}

// NewGateway creates a new Gateway
func NewGateway(hub *Hub, gameSvc *services.GameService, sheetSvc *services.SheetService) *Gateway {
	return &Gateway{
		hub:      hub,
		gameSvc:  gameSvc,
		sheetSvc: sheetSvc,
	}
}

var _ services.Publisher = (*Gateway)(nil)

// NumberDealt broadcasts a freshly dealt number to the game room.
func (g *Gateway) NumberDealt(gameID primitive.ObjectID, number, lastDealIndex int) {
	g.hub.Broadcast(gameID, evDealEvent, gin.H{
		"gameId":        gameID.Hex(),
		"number":        number,
		"lastDealIndex": lastDealIndex,
	})
}

// Counter broadcasts the seconds remaining until the next deal.
func (g *Gateway) Counter(gameID primitive.ObjectID, secondsLeft int) {
	g.hub.Broadcast(gameID, evCounter, gin.H{
		"gameId":  gameID.Hex(),
		"counter": secondsLeft,
	})
}

// GameStopped broadcasts that the dealing loop halted.
func (g *Gateway) GameStopped(gameID primitive.ObjectID) {
	g.hub.Broadcast(gameID, evStopped, gin.H{"gameId": gameID.Hex()})
}

// GameEnded broadcasts the end of a game and its final standings.
func (g *Gateway) GameEnded(gameID primitive.ObjectID) {
	g.hub.Broadcast(gameID, evPayload, gin.H{
		"gameId":  gameID.Hex(),
		"isEnded": true,
	})
	g.broadcastLeaderboard(context.Background(), gameID)
}

// HandleWS upgrades the connection and pumps events until the peer hangs up.
func (g *Gateway) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Failed to upgrade websocket", "error", err)
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 64),
		hub:  g.hub,
	}
	g.hub.register <- client

	go client.writePump()
	g.readPump(c.Request.Context(), client)
}

func (g *Gateway) readPump(ctx context.Context, client *Client) {
	defer func() {
		g.hub.unregister <- client
		client.conn.Close()
	}()
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("Websocket read error", "error", err)
			}
			return
		}
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			g.hub.Send(client, evWsError, gin.H{"message": "malformed message"})
			continue
		}
		g.dispatch(ctx, client, env)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

type joinPayload struct {
	GameID string `json:"gameId"`
	UserID string `json:"userId"`
}

type claimPayload struct {
	GameID   string           `json:"gameId"`
	UserID   string           `json:"userId"`
	TicketID string           `json:"ticketId"`
	Type     models.ClaimType `json:"type"`
	Numbers  []int            `json:"numbers"`
}

func (g *Gateway) dispatch(ctx context.Context, client *Client, env Envelope) {
	switch env.Event {
	case evJoinGame:
		g.onJoinGame(ctx, client, env.Data)
	case evJoinGameClient:
		g.onJoinGameClient(ctx, client, env.Data)
	case evLeaveGame:
		g.hub.leave <- client
		g.hub.Send(client, evLeftGame, gin.H{"gameId": client.GameID.Hex()})
	case evLive:
		g.onLive(ctx, client)
	case evDealt:
		g.onDealtNumbers(ctx, client)
	case evClaim:
		g.onClaim(ctx, client, env.Data)
	case evLeaderboard:
		g.broadcastLeaderboard(ctx, client.GameID)
	default:
		g.hub.Send(client, evWsError, gin.H{"message": "unknown event"})
	}
}

func (g *Gateway) onJoinGame(ctx context.Context, client *Client, data json.RawMessage) {
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		g.hub.Send(client, evJoinedGameError, gin.H{"message": "malformed join payload"})
		return
	}
	gameID, err := primitive.ObjectIDFromHex(p.GameID)
	if err != nil {
		g.hub.Send(client, evJoinedGameError, gin.H{"message": "invalid game id"})
		return
	}
	game, err := g.gameSvc.Game(ctx, gameID)
	if err != nil {
		g.hub.Send(client, evJoinedGameError, gin.H{"message": "game not found"})
		return
	}
	if userID, err := primitive.ObjectIDFromHex(p.UserID); err == nil {
		client.UserID = userID
	}
	client.GameID = gameID
	g.hub.join <- client

	var (
		sheets  []*models.Sheet
		tickets []*models.Ticket
	)
	if !client.UserID.IsZero() {
		sheets, tickets, err = g.sheetSvc.UserGameTickets(ctx, client.UserID, gameID)
		if err != nil {
			slog.Warn("Failed to load sheets on join", "gameId", p.GameID, "error", err)
		}
	}
	g.hub.Send(client, evJoinedGame, gin.H{"game": game, "sheets": sheets, "tickets": tickets})
}

func (g *Gateway) onLive(ctx context.Context, client *Client) {
	if client.GameID.IsZero() {
		g.hub.Send(client, evWsError, gin.H{"message": "join a game first"})
		return
	}
	game, err := g.gameSvc.Game(ctx, client.GameID)
	if err != nil {
		g.hub.Send(client, evWsError, gin.H{"message": "game not found"})
		return
	}
	g.hub.Send(client, evLiveRes, game)
}

func (g *Gateway) onDealtNumbers(ctx context.Context, client *Client) {
	if client.GameID.IsZero() {
		g.hub.Send(client, evWsError, gin.H{"message": "join a game first"})
		return
	}
	game, err := g.gameSvc.Game(ctx, client.GameID)
	if err != nil {
		g.hub.Send(client, evWsError, gin.H{"message": "game not found"})
		return
	}
	g.hub.Send(client, evOnDealt, gin.H{
		"gameId":       game.ID.Hex(),
		"dealtNumbers": game.DealtNumbers,
	})
}

func (g *Gateway) onClaim(ctx context.Context, client *Client, data json.RawMessage) {
	var p claimPayload
	if err := json.Unmarshal(data, &p); err != nil {
		g.hub.Send(client, evClaimResponse, gin.H{"message": services.MsgInvalidPayload})
		return
	}
	gameID, err1 := primitive.ObjectIDFromHex(p.GameID)
	ticketID, err2 := primitive.ObjectIDFromHex(p.TicketID)
	userID, err3 := primitive.ObjectIDFromHex(p.UserID)
	if err1 != nil || err2 != nil || err3 != nil {
		g.hub.Send(client, evClaimResponse, gin.H{"message": services.MsgInvalidPayload})
		return
	}

	result, err := g.gameSvc.VerifyClaim(ctx, userID, ticketID, gameID, p.Type, p.Numbers)
	if err != nil {
		slog.Error("Claim verification failed", "gameId", p.GameID, "error", err)
		g.hub.Send(client, evWsError, gin.H{"message": "claim could not be processed"})
		return
	}

	g.hub.Send(client, evClaimResponse, result)
	if result.Won() {
		g.hub.Broadcast(gameID, evClaimSuccessRes, result)
		g.broadcastLeaderboard(ctx, gameID)
	}
}

func (g *Gateway) broadcastLeaderboard(ctx context.Context, gameID primitive.ObjectID) {
	if gameID.IsZero() {
		return
	}
	entries, err := g.gameSvc.Leaderboard(ctx, gameID)
	if err != nil {
		slog.Error("Failed to build leaderboard", "gameId", gameID.Hex(), "error", err)
		return
	}
	g.hub.Broadcast(gameID, evLeaderboardRes, entries)
}

// onJoinGameClient is the lightweight join for a spectator or a known game:
// the client names the game, enters its room and gets the dealt history, no
// sheet lookup.
func (g *Gateway) onJoinGameClient(ctx context.Context, client *Client, data json.RawMessage) {
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		g.hub.Send(client, evWsError, gin.H{"message": "Invalid Payload"})
		return
	}
	gameID, err := primitive.ObjectIDFromHex(p.GameID)
	if err != nil {
		g.hub.Send(client, evWsError, gin.H{"message": "Invalid Payload"})
		return
	}
	game, err := g.gameSvc.Game(ctx, gameID)
	if err != nil {
		g.hub.Send(client, evWsError, gin.H{"message": "game not found"})
		return
	}
	if userID, err := primitive.ObjectIDFromHex(p.UserID); err == nil {
		client.UserID = userID
	}
	client.GameID = gameID
	g.hub.join <- client

	g.hub.Send(client, evJoinedGame, gin.H{
		"numbers":   game.DealtNumbers,
		"startDate": game.StartDate,
		"isStarted": game.IsStarted,
	})
}
