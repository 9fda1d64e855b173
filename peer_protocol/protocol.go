package peer_protocol

import (
	"strconv"
)

const Protocol = "\x13BitTorrent protocol"

type MessageType byte

const (
	Choke         MessageType = iota
	Unchoke                   // 1
	Interested                // 2
	NotInterested             // 3
	Have                      // 4
	Bitfield                  // 5
	Request                   // 6
	Piece                     // 7
	Cancel                    // 8
	Port                      // 9

	// BEP 6 - Fast extension
	Suggest     MessageType = 0x0d // 13
	HaveAll     MessageType = 0x0e // 14
	HaveNone    MessageType = 0x0f // 15
	Reject      MessageType = 0x10 // 16
	AllowedFast MessageType = 0x11 // 17

	Extended MessageType = 20
)

var messageTypeNames = map[MessageType]string{
	Choke:         "Choke",
	Unchoke:       "Unchoke",
	Interested:    "Interested",
	NotInterested: "NotInterested",
	Have:          "Have",
	Bitfield:      "Bitfield",
	Request:       "Request",
	Piece:         "Piece",
	Cancel:        "Cancel",
	Port:          "Port",
	Suggest:       "Suggest",
	HaveAll:       "HaveAll",
	HaveNone:      "HaveNone",
	Reject:        "Reject",
	AllowedFast:   "AllowedFast",
	Extended:      "Extended",
}

func (mt MessageType) String() string {
	if s, ok := messageTypeNames[mt]; ok {
		return s
	}
	return "MessageType(" + strconv.Itoa(int(mt)) + ")"
}

// Extension message IDs are negotiated per connection, except for the extended handshake.
type ExtensionNumber byte

const HandshakeExtendedID ExtensionNumber = 0
