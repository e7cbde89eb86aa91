package vangerssrv

import (
	"log/slog"

	"github.com/udisondev/vangers-srv/internal/player"
	"github.com/udisondev/vangers-srv/internal/protocol"
)

// handlerFunc is one action callback. Every concrete handler schedules its
// own fan-out via notify*/sendDirect and returns only an error — the
// dispatcher-level "Response"/"Broadcast"/"Complete" distinction from
// §4.6 collapses to this because no handler below needs the generic
// fallback paths; each already knows exactly who should receive what.
type handlerFunc func(s *Server, clientID player.ClientID, pkt protocol.Packet) error

// view reports whether action's traffic should log at debug level by
// default, mirroring the source's callback::view() filter: object churn
// and (optionally) SERVER_TIME_QUERY/GAMES_LIST_QUERY polling are noisy
// enough to suppress.
func (s *Server) view(action protocol.Action) bool {
	switch action {
	case protocol.ActionCreateObject, protocol.ActionUpdateObject, protocol.ActionDeleteObject:
		return false
	case protocol.ActionServerTimeQuery:
		return !s.cfg.SuppressServerTimeLogs
	case protocol.ActionGamesListQuery:
		return !s.cfg.SuppressGamesListLogs
	default:
		return true
	}
}

func (s *Server) dispatch(clientID player.ClientID, pkt protocol.Packet) {
	if s.view(pkt.Action) {
		slog.Debug("dispatch", "client_id", clientID, "action", pkt.Action)
	}

	h, known := handlers[pkt.Action]
	if !known {
		slog.Debug("unknown or unhandled action ignored", "client_id", clientID, "raw_action", pkt.RawAction)
		return
	}

	if err := h(s, clientID, pkt); err != nil {
		if s.metrics != nil {
			s.metrics.DispatchErrors.WithLabelValues(pkt.Action.String()).Inc()
		}
		slog.Warn("handler error", "client_id", clientID, "action", pkt.Action, "error", err)
	}
	if s.metrics != nil {
		s.metrics.PacketsTotal.WithLabelValues(pkt.Action.String()).Inc()
	}
}

var handlers = map[protocol.Action]handlerFunc{
	protocol.ActionGamesListQuery:        handleGamesListQuery,
	protocol.ActionAttachToGame:          handleAttachToGame,
	protocol.ActionServerTimeQuery:       handleServerTimeQuery,
	protocol.ActionRegisterName:          handleRegisterName,
	protocol.ActionSetGameData:           handleSetGameData,
	protocol.ActionGetGameData:           handleGetGameData,
	protocol.ActionSetPlayerData:         handleSetPlayerData,
	protocol.ActionTotalPlayersDataQuery: handleTotalPlayersDataQuery,
	protocol.ActionCreateObject:          handleCreateObject,
	protocol.ActionUpdateObject:          handleUpdateObject,
	protocol.ActionDeleteObject:          handleDeleteObject,
	protocol.ActionSetWorld:              handleSetWorld,
	protocol.ActionLeaveWorld:            handleLeaveWorld,
	protocol.ActionDirectSending:         handleDirectSending,
	protocol.ActionCloseSocket:           handleCloseSocketAction,
}
