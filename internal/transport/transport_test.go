package transport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func osPipe(t *testing.T) (*os.File, *os.File, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err == nil {
		t.Cleanup(func() {
			_ = r.Close()
			_ = w.Close()
		})
	}
	return r, w, err
}

func Test_ReadFull_WriteFull_Round_Trip(t *testing.T) {
	r, w, err := osPipe(t)
	require.NoError(t, err)

	want := []byte("hello, docindex")

	go func() {
		_ = WriteFull(w, want)
		_ = w.Close()
	}()

	got := make([]byte, len(want))
	require.NoError(t, ReadFull(r, got))
	require.True(t, bytes.Equal(want, got))
}

func Test_ReadFull_Reports_Transport_Error_On_Premature_EOF(t *testing.T) {
	r, w, err := osPipe(t)
	require.NoError(t, err)

	go func() {
		_, _ = w.Write([]byte("ab"))
		_ = w.Close()
	}()

	buf := make([]byte, 4)
	err = ReadFull(r, buf)
	require.Error(t, err)
}

func Test_Server_Client_FIFO_Round_Trip(t *testing.T) {
	dir := t.TempDir()

	server, err := OpenServer(dir)
	require.NoError(t, err)
	defer CloseServer(dir, server)

	toServer, fromServer, err := OpenClient(dir, 4242)
	require.NoError(t, err)
	defer CloseClient(dir, 4242, toServer, fromServer)

	payload := []byte("request-frame")

	done := make(chan struct{})

	go func() {
		defer close(done)

		buf := make([]byte, len(payload))
		_ = ReadFull(server, buf)

		reply := []byte("response-frame")
		_ = ReplyTo(dir, 4242, reply)
	}()

	require.NoError(t, WriteFull(toServer, payload))

	reply := make([]byte, len("response-frame"))
	require.NoError(t, ReadFull(fromServer, reply))
	require.Equal(t, "response-frame", string(reply))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("server goroutine did not finish")
	}
}

func Test_OpenClient_Fails_Fast_When_No_Server_Listening(t *testing.T) {
	dir := t.TempDir()

	_, _, err := OpenClient(dir, 1)
	require.Error(t, err)
}

func Test_ClientPath_Derives_From_Pid(t *testing.T) {
	got := ClientPath("/tmp", 1234)
	require.Equal(t, filepath.Join("/tmp", "client_1234.fifo"), got)
}
