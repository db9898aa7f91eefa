package gameserver

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/ddongo/internal/config"
	"github.com/udisondev/ddongo/internal/gameserver/serverpackets"
	"github.com/udisondev/ddongo/internal/model"
	"github.com/udisondev/ddongo/internal/testutil"
)

func startServer(t *testing.T, w *testWorld) string {
	t.Helper()
	cfg := config.DefaultGameServer()
	cfg.WriteTimeout = time.Second
	cfg.ReadTimeout = 5 * time.Second

	srv, err := NewServer(cfg, w.handler, w.clients)
	require.NoError(t, err)

	ln, addr := testutil.ListenTCP(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	t.Cleanup(func() {
		cancel()
		_ = srv.Close()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})

	require.NoError(t, testutil.WaitForTCPReady(addr, 2*time.Second))
	return addr
}

func TestServer_EquipRoundTrip(t *testing.T) {
	w := newTestWorld(t)
	addr := startServer(t, w)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	testutil.SendFrame(t, conn, enterWorld(1))
	readOpcodes(t, conn,
		serverpackets.OpcodeEnterWorldRes,
		serverpackets.OpcodeChangeCharacterEquipNtc,
		serverpackets.OpcodeChangePawnEquipNtc,
	)

	testutil.SendFrame(t, conn, changeCharacterEquip(equipEntry{"sword001", model.EquipTypePerformance, 1}))
	readOpcodes(t, conn,
		serverpackets.OpcodeItemUpdateCharacterNtc,
		serverpackets.OpcodeChangeCharacterEquipRes,
		serverpackets.OpcodeChangeCharacterEquipNtc,
	)

	// отказ не закрывает соединение
	testutil.SendFrame(t, conn, unequipByUID(0, "helm0001"))
	_, code := readErrorRes(t, conn)
	assert.Equal(t, serverpackets.ErrorCodeNotFound, code)

	testutil.SendFrame(t, conn, unequipByUID(0, "sword001"))
	readOpcodes(t, conn,
		serverpackets.OpcodeItemUpdateCharacterNtc,
		serverpackets.OpcodeChangeCharacterEquipRes,
		serverpackets.OpcodeChangeCharacterEquipNtc,
	)

	reloaded, err := w.store.LoadCharacter(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, reloaded.EquipmentTemplate().EquipItem(model.JobFighter, model.EquipTypePerformance, 1))
}

func TestServer_DisconnectReleasesCharacter(t *testing.T) {
	w := newTestWorld(t)
	addr := startServer(t, w)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	testutil.SendFrame(t, conn, enterWorld(2))
	readOpcodes(t, conn, serverpackets.OpcodeEnterWorldRes, serverpackets.OpcodeChangeCharacterEquipNtc)
	require.Equal(t, 1, w.clients.InGameCount())

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return w.clients.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Nil(t, w.clients.ClientByCharacter(2))
}

func TestServer_ClosesOnPacketBeforeEnterWorld(t *testing.T) {
	w := newTestWorld(t)
	addr := startServer(t, w)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	testutil.SendFrame(t, conn, changeCharacterEquip())
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, err = conn.Read(make([]byte, 1))
	assert.Error(t, err, "server closes the connection")
}
