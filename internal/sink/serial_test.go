package sink

import (
	"bufio"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"

	"github.com/flexpager/flexproc/flex"
)

func Test_Serial_humanReadableWritesToPort(t *testing.T) {
	ptmx, pts, err := pty.Open()
	if !assert.NoError(t, err) {
		return
	}
	defer ptmx.Close()
	defer pts.Close()

	s, err := Open(pts.Name(), 0, FormatHumanReadable)
	if !assert.NoError(t, err) {
		return
	}
	defer s.Close()

	msg := &flex.Message{Payload: []byte("HELLO\x00"), Recipients: []uint32{32773}}
	s.EmitMessage(msg, false)

	assert.NoError(t, ptmx.SetReadDeadline(time.Now().Add(time.Second)))
	line, err := bufio.NewReader(ptmx).ReadString('\n')
	assert.NoError(t, err)
	assert.Contains(t, line, "ADDR:5")
}
