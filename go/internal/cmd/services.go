package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/ipl-auction/go/internal/auction"
	"github.com/mcdev12/ipl-auction/go/internal/auction/events"
	"github.com/mcdev12/ipl-auction/go/internal/auction/gateway"
	"github.com/mcdev12/ipl-auction/go/internal/auction/outbox"
	"github.com/mcdev12/ipl-auction/go/internal/auth"
	"github.com/mcdev12/ipl-auction/go/internal/event"
	"github.com/mcdev12/ipl-auction/go/internal/fixture"
	"github.com/mcdev12/ipl-auction/go/internal/httpapi"
	"github.com/mcdev12/ipl-auction/go/internal/player"
	"github.com/mcdev12/ipl-auction/go/internal/settlement"
	"github.com/mcdev12/ipl-auction/go/internal/teams"
	"github.com/mcdev12/ipl-auction/go/internal/users"
	"github.com/rs/zerolog/log"
)

// Services holds the wired application graph.
type Services struct {
	API               *httpapi.Server
	WebSocket         *gateway.WebSocketHandler
	ConnectionManager *gateway.ConnectionManager
	Auth              *auth.Manager
	Relay             *outbox.Publisher
}

// fanoutBroadcaster delivers every coordinator event to each sink: the
// WebSocket room and, when enabled, the JetStream relay.
type fanoutBroadcaster struct {
	sinks []auction.Broadcaster
}

func (f *fanoutBroadcaster) Broadcast(ev *events.Event) {
	for _, sink := range f.sinks {
		sink.Broadcast(ev)
	}
}

func setupServices(ctx context.Context, db *pgxpool.Pool, config *Config) *Services {
	// Database layer -> Repository layer -> App layer
	authManager := auth.NewManager(getEnv("JWT_SECRET", "dev-secret-change-me"), jwtTTL())

	eventApp := event.NewApp(event.NewRepository(db))
	playerApp := player.NewApp(player.NewRepository(db), eventApp)
	teamsApp := teams.NewApp(teams.NewRepository(db), eventApp)
	settlementRepo := settlement.NewRepository(db)
	usersApp := users.NewApp(users.NewRepository(db), authManager)
	fixtureApp := fixture.NewApp(fixture.NewRepository(db), teamsApp, eventApp, nil)

	// Broadcast fan-out: the WebSocket room always, the NATS relay when
	// configured and reachable. The fan-out is handed to the coordinator
	// before its sinks exist; sinks attach below, before any lot can start.
	fanout := &fanoutBroadcaster{}
	coordinator := auction.NewCoordinator(playerApp, teamsApp, eventApp, settlementRepo, fanout, config.Auction, nil)

	router := gateway.NewCommandRouter(coordinator)
	connectionManager := gateway.NewConnectionManager(gateway.DefaultConnectionConfig(), router)
	fanout.sinks = append(fanout.sinks, connectionManager)

	var relay *outbox.Publisher
	if config.NATS.Enabled {
		relayConfig := outbox.DefaultPublisherConfig()
		if config.NATS.URL != "" {
			relayConfig.URL = config.NATS.URL
		}
		p, err := outbox.NewPublisher(ctx, relayConfig)
		if err != nil {
			log.Warn().Err(err).Msg("event relay unavailable, continuing without it")
		} else {
			relay = p
			fanout.sinks = append(fanout.sinks, relay)
		}
	}

	wsHandler := gateway.NewWebSocketHandler(connectionManager, coordinator, authManager)
	apiServer := httpapi.NewServer(usersApp, eventApp, playerApp, teamsApp, fixtureApp, settlementRepo)

	return &Services{
		API:               apiServer,
		WebSocket:         wsHandler,
		ConnectionManager: connectionManager,
		Auth:              authManager,
		Relay:             relay,
	}
}
