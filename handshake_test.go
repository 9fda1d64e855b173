package torrent

import (
	"testing"

	qt "github.com/go-quicktest/qt"
)

func TestHandshakeStateEitherOrder(t *testing.T) {
	sentFirst := HandshakePending.SentHandshake()
	qt.Check(t, qt.Equals(sentFirst, HandshakeSent))
	qt.Check(t, qt.Equals(sentFirst.ReceivedHandshake(), HandshakeComplete))

	receivedFirst := HandshakePending.ReceivedHandshake()
	qt.Check(t, qt.Equals(receivedFirst, HandshakeReceived))
	qt.Check(t, qt.Equals(receivedFirst.SentHandshake(), HandshakeComplete))
}

func TestHandshakeStateRepeatIsNoop(t *testing.T) {
	qt.Check(t, qt.Equals(HandshakeSent.SentHandshake(), HandshakeSent))
	qt.Check(t, qt.Equals(HandshakeReceived.ReceivedHandshake(), HandshakeReceived))
	qt.Check(t, qt.Equals(HandshakeComplete.SentHandshake(), HandshakeComplete))
	qt.Check(t, qt.Equals(HandshakeComplete.ReceivedHandshake(), HandshakeComplete))
}

func TestHandshakeStateFlags(t *testing.T) {
	for _, tc := range []struct {
		state              HandshakeState
		sent, received     bool
		complete           bool
		expectedStringForm string
	}{
		{HandshakePending, false, false, false, "pending"},
		{HandshakeSent, true, false, false, "sent"},
		{HandshakeReceived, false, true, false, "received"},
		{HandshakeComplete, true, true, true, "complete"},
	} {
		qt.Check(t, qt.Equals(tc.state.HandshakeSentFlag(), tc.sent), qt.Commentf("%v", tc.state))
		qt.Check(t, qt.Equals(tc.state.HandshakeReceivedFlag(), tc.received), qt.Commentf("%v", tc.state))
		qt.Check(t, qt.Equals(tc.state.Complete(), tc.complete), qt.Commentf("%v", tc.state))
		qt.Check(t, qt.Equals(tc.state.String(), tc.expectedStringForm))
	}
	qt.Check(t, qt.Equals(HandshakeState(9).String(), "HandshakeState(9)"))
}
