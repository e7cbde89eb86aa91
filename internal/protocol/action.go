// Package protocol implements the length-prefixed wire framing and the
// request/response action codes exchanged with Vangers game clients.
package protocol

// Action identifies the single byte that follows the frame length on the
// wire. Values below 0x80 are object packets, sent by clients and fanned out
// by the server; 0x81-0x95 are client requests; 0xC1 and above are server
// responses and notifications.
type Action uint8

const (
	ActionUnknown Action = 0x00

	// object packets (both directions), then server -> client
	ActionCreateObject Action = 0x02
	ActionDeleteObject Action = 0x04
	ActionUpdateObject Action = 0x08
	ActionHideObject   Action = 0x0C

	ActionGamesListResponse         Action = 0xC1
	ActionTopListResponse           Action = 0xC2
	ActionAttachToGameResponse      Action = 0xC3
	ActionRestoreConnectionResponse Action = 0xC4
	ActionServerTime                Action = 0xC6
	ActionServerTimeResponse        Action = 0xC7
	ActionSetWorldResponse          Action = 0xC8
	ActionTotalListOfPlayersData    Action = 0xCC
	ActionGameDataResponse          Action = 0xCD
	ActionDirectReceiving           Action = 0xCE
	ActionPlayersPosition           Action = 0xCF
	ActionPlayersWorld              Action = 0xD1
	ActionPlayersStatus             Action = 0xD2
	ActionPlayersData               Action = 0xD3
	ActionPlayersRating             Action = 0xD4
	ActionPlayersName               Action = 0xD5
	ActionZTimeResponse             Action = 0xE3

	// client -> server
	ActionGamesListQuery         Action = 0x81
	ActionTopListQuery           Action = 0x82
	ActionAttachToGame           Action = 0x83
	ActionRestoreConnection      Action = 0x84
	ActionCloseSocket            Action = 0x86
	ActionRegisterName           Action = 0x88
	ActionServerTimeQuery        Action = 0x89
	ActionSetWorld               Action = 0x8B
	ActionLeaveWorld             Action = 0x8C
	ActionSetPosition            Action = 0x8D
	ActionTotalPlayersDataQuery  Action = 0x91
	ActionSetGameData            Action = 0x92
	ActionGetGameData            Action = 0x93
	ActionSetPlayerData          Action = 0x94
	ActionDirectSending          Action = 0x95
)

var actionNames = map[Action]string{
	ActionCreateObject:              "CREATE_OBJECT",
	ActionDeleteObject:              "DELETE_OBJECT",
	ActionUpdateObject:              "UPDATE_OBJECT",
	ActionHideObject:                "HIDE_OBJECT",
	ActionGamesListResponse:         "GAMES_LIST_RESPONSE",
	ActionTopListResponse:           "TOP_LIST_RESPONSE",
	ActionAttachToGameResponse:      "ATTACH_TO_GAME_RESPONSE",
	ActionRestoreConnectionResponse: "RESTORE_CONNECTION_RESPONSE",
	ActionServerTime:                "SERVER_TIME",
	ActionServerTimeResponse:        "SERVER_TIME_RESPONSE",
	ActionSetWorldResponse:          "SET_WORLD_RESPONSE",
	ActionTotalListOfPlayersData:    "TOTAL_LIST_OF_PLAYERS_DATA",
	ActionGameDataResponse:          "GAME_DATA_RESPONSE",
	ActionDirectReceiving:           "DIRECT_RECEIVING",
	ActionPlayersPosition:           "PLAYERS_POSITION",
	ActionPlayersWorld:              "PLAYERS_WORLD",
	ActionPlayersStatus:             "PLAYERS_STATUS",
	ActionPlayersData:               "PLAYERS_DATA",
	ActionPlayersRating:             "PLAYERS_RATING",
	ActionPlayersName:               "PLAYERS_NAME",
	ActionZTimeResponse:             "Z_TIME_RESPONSE",
	ActionGamesListQuery:            "GAMES_LIST_QUERY",
	ActionTopListQuery:              "TOP_LIST_QUERY",
	ActionAttachToGame:              "ATTACH_TO_GAME",
	ActionRestoreConnection:         "RESTORE_CONNECTION",
	ActionCloseSocket:               "CLOSE_SOCKET",
	ActionRegisterName:              "REGISTER_NAME",
	ActionServerTimeQuery:           "SERVER_TIME_QUERY",
	ActionSetWorld:                  "SET_WORLD",
	ActionLeaveWorld:                "LEAVE_WORLD",
	ActionSetPosition:               "SET_POSITION",
	ActionTotalPlayersDataQuery:     "TOTAL_PLAYERS_DATA_QUERY",
	ActionSetGameData:               "SET_GAME_DATA",
	ActionGetGameData:               "GET_GAME_DATA",
	ActionSetPlayerData:             "SET_PLAYER_DATA",
	ActionDirectSending:             "DIRECT_SENDING",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "UNKNOWN"
}

// knownActions is the set of action bytes the dispatcher recognizes. Any
// byte outside this set decodes to ActionUnknown with the original byte
// preserved in Packet.RawAction.
var knownActions = buildKnownActions()

func buildKnownActions() map[uint8]Action {
	m := make(map[uint8]Action, len(actionNames))
	for a := range actionNames {
		m[uint8(a)] = a
	}
	return m
}

// ResponseFor returns the response action mapped to a request action per
// the request/response table, and false for requests with no response
// (SET_GAME_DATA) or for non-request actions.
func ResponseFor(request Action) (Action, bool) {
	switch request {
	case ActionGamesListQuery:
		return ActionGamesListResponse, true
	case ActionAttachToGame:
		return ActionAttachToGameResponse, true
	case ActionServerTimeQuery:
		return ActionServerTime, true
	case ActionTotalPlayersDataQuery:
		return ActionTotalListOfPlayersData, true
	case ActionRegisterName:
		return ActionPlayersName, true
	case ActionSetPlayerData:
		return ActionPlayersData, true
	case ActionGetGameData:
		return ActionGameDataResponse, true
	case ActionSetWorld:
		return ActionSetWorldResponse, true
	case ActionDirectSending:
		return ActionDirectReceiving, true
	default:
		return ActionUnknown, false
	}
}
