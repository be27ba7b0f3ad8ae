package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/uno/config"
	"github.com/minaorangina/uno/engine"
	"github.com/minaorangina/uno/players"
	"github.com/minaorangina/uno/protocol"
	"github.com/minaorangina/uno/store"
	"k8s.io/klog/v2"
)

const (
	gameIDLength   = 6
	gameIDAttempts = 10
)

type NewGameReq struct {
	Name string `json:"name"`
}

type PendingGameRes struct {
	GameID   string   `json:"game_id"`
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Admin    bool     `json:"is_admin"`
	Players  []string `json:"players"`
}

type JoinGameReq struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
}

type StartGameReq struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
}

type GetGameRes struct {
	Status  string                `json:"status"`
	GameID  string                `json:"game_id"`
	Players []string              `json:"players"`
	State   *protocol.StateRecord `json:"state,omitempty"`
	Winner  *protocol.PlayerInfo  `json:"winner,omitempty"`
}

// GameServer is a game server
type GameServer struct {
	store    store.GameStore
	cfg      config.Config
	upgrader websocket.Upgrader

	// games are played until ctx is cancelled
	ctx    context.Context
	cancel context.CancelFunc

	mu  sync.Mutex
	rng *rand.Rand

	http.Server
}

// NewServer creates a new GameServer
func NewServer(s store.GameStore, cfg config.Config) *GameServer {
	g := &GameServer{
		store: s,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	g.ctx, g.cancel = context.WithCancel(context.Background())
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     g.checkOrigin,
	}

	router := http.NewServeMux()
	router.Handle("/new", http.HandlerFunc(g.HandleNewGame))
	router.Handle("/join", http.HandlerFunc(g.HandleJoinGame))
	router.Handle("/start", http.HandlerFunc(g.HandleStartGame))
	router.Handle("/game/", http.HandlerFunc(g.HandleFindGame))
	router.Handle("/ws", http.HandlerFunc(g.HandleWS))

	logger := klog.NewStandardLogger("INFO")
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.AllowedOrigin}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(klog.NewStandardLogger("ERROR")))

	g.Addr = cfg.Addr()
	g.Handler = handlers.LoggingHandler(logger.Writer(), recovery(cors(router)))

	return g
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// Shutdown stops every game in play, then the server
func (g *GameServer) Shutdown(ctx context.Context) error {
	g.cancel()
	return g.Server.Shutdown(ctx)
}

// NewGameID generates a code of six capital letters
func (g *GameServer) NewGameID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	code := make([]byte, gameIDLength)
	for i := range code {
		code[i] = byte('A' + g.rng.Intn(26))
	}
	return string(code)
}

func unknownGameIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown game ID '%s'", unknownID)
}

func (g *GameServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return g.cfg.AllowedOrigin == "*" || origin == "" || origin == g.cfg.AllowedOrigin
}

// HandleNewGame handles a request to create a new game
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return
	}
	if data.Name == "" {
		writeText(w, http.StatusBadRequest, "Missing player name")
		return
	}

	playerID := players.NewID()
	ge, err := g.addGame(playerID)
	if err != nil {
		klog.Errorf("creating game: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := g.store.AddPendingPlayer(ge.ID(), playerID, data.Name); err != nil {
		klog.Errorf("adding %s to game %s: %v", playerID, ge.ID(), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, PendingGameRes{
		GameID:   ge.ID(),
		PlayerID: playerID,
		Name:     data.Name,
		Admin:    true,
		Players:  []string{},
	})
}

// addGame stores a new game under an unused ID
func (g *GameServer) addGame(creatorID string) (*engine.GameEngine, error) {
	for i := 0; i < gameIDAttempts; i++ {
		ge, err := engine.NewGameEngine(engine.GameEngineOpts{
			GameID:     g.NewGameID(),
			CreatorID:  creatorID,
			Uno:        g.cfg.Uno(),
			MaxPlayers: g.cfg.MaxPlayers,
		})
		if err != nil {
			return nil, err
		}

		err = g.store.AddInactiveGame(ge)
		if errors.Is(err, store.ErrDuplicateGameID) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return ge, nil
	}
	return nil, store.ErrDuplicateGameID
}

func (g *GameServer) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data JoinGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return
	}

	if data.GameID == "" {
		writeText(w, http.StatusBadRequest, "Missing game ID")
		return
	}
	if data.Name == "" {
		writeText(w, http.StatusBadRequest, "Missing player name")
		return
	}

	ge := g.store.FindInactiveGame(data.GameID)
	if ge == nil {
		writeText(w, http.StatusBadRequest, unknownGameIDMsg(data.GameID))
		return
	}

	playerID := players.NewID()
	if err := g.store.AddPendingPlayer(data.GameID, playerID, data.Name); err != nil {
		klog.Errorf("adding %s to game %s: %v", playerID, data.GameID, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, PendingGameRes{
		GameID:   data.GameID,
		PlayerID: playerID,
		Name:     data.Name,
		Players:  ge.Players().Names(),
	})
}

// HandleStartGame deals the cards and plays the game in the background.
// Only the player who created the game can start it.
func (g *GameServer) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data StartGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return
	}

	ge := g.store.FindGame(data.GameID)
	if ge == nil {
		writeText(w, http.StatusNotFound, unknownGameIDMsg(data.GameID))
		return
	}
	if data.PlayerID != ge.CreatorID() {
		writeText(w, http.StatusForbidden, "only the creator can start the game")
		return
	}

	if err := ge.Start(); err != nil {
		writeText(w, http.StatusBadRequest, err.Error())
		return
	}

	go func() {
		if err := ge.Play(g.ctx); err != nil {
			klog.Infof("game %s stopped: %v", ge.ID(), err)
		}
	}()

	w.WriteHeader(http.StatusOK)
}

// HandleFindGame reports a game's status, with the table as seen by the player_id in the query
func (g *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	gameID := strings.TrimPrefix(r.URL.Path, "/game/")
	if gameID == "" {
		writeText(w, http.StatusBadRequest, "missing game ID")
		return
	}

	ge := g.store.FindGame(gameID)
	if ge == nil {
		writeText(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	ps := ge.Players()
	res := GetGameRes{
		Status:  ge.PlayState().String(),
		GameID:  gameID,
		Players: ps.Names(),
	}
	if state := ge.State(); state != nil {
		record := protocol.EncodeState(state.PlayerView(ps.Index(r.URL.Query().Get("player_id"))))
		res.State = &record
	}
	if winner, ok := ge.Winner(); ok {
		info := players.Info(winner)
		res.Winner = &info
	}

	writeJSON(w, http.StatusOK, res)
}

// HandleWS seats a pending player once their websocket connects
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	gameID, playerID := query.Get("game_id"), query.Get("player_id")
	if gameID == "" {
		writeText(w, http.StatusBadRequest, "missing game ID")
		return
	}
	if playerID == "" {
		writeText(w, http.StatusBadRequest, "missing player ID")
		return
	}

	ge := g.store.FindInactiveGame(gameID)
	if ge == nil {
		writeText(w, http.StatusBadRequest, unknownGameIDMsg(gameID))
		return
	}

	pendingPlayer := g.store.FindPendingPlayer(gameID, playerID)
	if pendingPlayer == nil {
		writeText(w, http.StatusBadRequest, "unknown player ID")
		return
	}

	// the upgrader writes its own error response
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		klog.Errorf("upgrading %s: %v", playerID, err)
		return
	}

	player := players.NewWSPlayer(playerID, pendingPlayer.Name, conn)
	player.DecisionTimeout = g.cfg.DecisionTimeout
	if err := g.store.AddPlayerToGame(gameID, player); err != nil {
		klog.Errorf("adding %s to game %s: %v", playerID, gameID, err)
		player.Send(protocol.OutboundMessage{
			PlayerID: playerID,
			Command:  protocol.Error,
			Error:    fmt.Sprintf("could not join the game: %v", err),
		})
		player.Close()
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		klog.Errorf("encoding response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(text))
}

func writeParseError(err error, w http.ResponseWriter, r *http.Request) {
	if err == io.EOF {
		writeText(w, http.StatusBadRequest, "Missing body")
		return
	}
	klog.V(1).Infof("%s %s: %v", r.Method, r.URL.Path, err)
	writeText(w, http.StatusBadRequest, "Malformed body")
}
