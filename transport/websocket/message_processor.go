package websocket

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

const (
	opContinuation byte = 0x0
	opText         byte = 0x1
	opClose        byte = 0x8
	opPing         byte = 0x9
	opPong         byte = 0xA
)

const maxPayloadSize = 1 << 20

var (
	ErrConnectionClosed = errors.New("connection closed by client")
	ErrFrameTooLarge    = errors.New("frame payload too large")
)

// frame represents a WebSocket frame and its metadata.
type frame struct {
	isFin   bool
	opCode  byte
	length  uint64
	payload []byte
}

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload - body of requests and responses.
type Payload struct {
	Player  *entity.Player `json:"player,omitempty"`
	Game    *GameView      `json:"game,omitempty"`
	Move    string         `json:"move,omitempty"`
	Verdict string         `json:"verdict,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// GameView - what players see of a game. Engine state and sessions stay hidden.
type GameView struct {
	ID        string `json:"id"`
	Board     string `json:"board,omitempty"`
	Turn      string `json:"turn,omitempty"`
	Status    string `json:"status,omitempty"`
	Winner    string `json:"winner,omitempty"`
	Reason    string `json:"reason,omitempty"`
	LastMove  string `json:"last_move,omitempty"`
	MoveCount int    `json:"move_count,omitempty"`
}

func newGameView(game *entity.Game) *GameView {
	return &GameView{
		ID:        game.ID,
		Board:     game.Snapshot(),
		Turn:      game.Turn,
		Status:    game.Status,
		Winner:    game.Winner,
		Reason:    game.Reason,
		LastMove:  game.LastMove,
		MoveCount: game.MoveCount,
	}
}

// connection - one client socket. Writes may come from other players' handlers.
type connection struct {
	writeMutex sync.Mutex
	bufrw      *bufio.ReadWriter
}

func newConnection(bufrw *bufio.ReadWriter) *connection {
	return &connection{bufrw: bufrw}
}

func (that *connection) writeFrame(frameData frame) error {
	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	return writeFrame(that.bufrw.Writer, frameData)
}

func sendMessage(conn *connection, action string, payload Payload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	responseBytes, err := json.Marshal(Message{
		Action:  action,
		Payload: payloadBytes,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	f := frame{
		isFin:   true,
		opCode:  opText,
		length:  uint64(len(responseBytes)),
		payload: responseBytes,
	}

	if err = conn.writeFrame(f); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}

func writeFrame(writer *bufio.Writer, frameData frame) error {
	buf := make([]byte, 2, 10+len(frameData.payload))
	buf[0] |= frameData.opCode

	if frameData.isFin {
		buf[0] |= 0x80
	}

	switch {
	case frameData.length < 126:
		buf[1] |= byte(frameData.length)
	case frameData.length < 1<<16:
		buf[1] |= 126
		buf = binary.BigEndian.AppendUint16(buf, uint16(frameData.length))
	default:
		buf[1] |= 127
		buf = binary.BigEndian.AppendUint64(buf, frameData.length)
	}

	buf = append(buf, frameData.payload...)

	if _, err := writer.Write(buf); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}

	return nil
}

// readRequest - reads the next text message, answering pings on the way.
func readRequest(conn *connection) ([]byte, error) {
	var message []byte

	for {
		f, err := readFrame(conn.bufrw.Reader)
		if err != nil {
			return nil, err
		}

		switch f.opCode {
		case opClose:
			return nil, ErrConnectionClosed
		case opPing:
			pong := frame{isFin: true, opCode: opPong, length: f.length, payload: f.payload}
			if err = conn.writeFrame(pong); err != nil {
				return nil, err
			}
			continue
		case opPong:
			continue
		case opText, opContinuation:
		}

		message = append(message, f.payload...)
		if len(message) > maxPayloadSize {
			return nil, ErrFrameTooLarge
		}

		if f.isFin {
			return message, nil
		}
	}
}

func readFrame(reader io.Reader) (frame, error) {
	header := make([]byte, 2)
	if _, err := io.ReadFull(reader, header); err != nil {
		return frame{}, fmt.Errorf("failed to read header: %w", err)
	}

	length, err := readPayloadLength(reader, header[1]&0x7f)
	if err != nil {
		return frame{}, err
	}

	if length > maxPayloadSize {
		return frame{}, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, length)
	}

	mask, err := readMask(reader, header[1]>>7 == 1)
	if err != nil {
		return frame{}, err
	}

	payload, err := readData(reader, length, mask)
	if err != nil {
		return frame{}, err
	}

	return frame{
		isFin:   header[0]>>7 == 1,
		opCode:  header[0] & 0x0f,
		length:  length,
		payload: payload,
	}, nil
}

func readPayloadLength(reader io.Reader, payloadLen byte) (uint64, error) {
	switch payloadLen {
	case 126:
		length := make([]byte, 2)
		if _, err := io.ReadFull(reader, length); err != nil {
			return 0, fmt.Errorf("failed to read payload length: %w", err)
		}
		return uint64(binary.BigEndian.Uint16(length)), nil
	case 127:
		length := make([]byte, 8)
		if _, err := io.ReadFull(reader, length); err != nil {
			return 0, fmt.Errorf("failed to read payload length: %w", err)
		}
		return binary.BigEndian.Uint64(length), nil
	default:
		return uint64(payloadLen), nil
	}
}

func readMask(reader io.Reader, masked bool) ([]byte, error) {
	if !masked {
		return nil, nil
	}

	mask := make([]byte, 4)
	if _, err := io.ReadFull(reader, mask); err != nil {
		return nil, fmt.Errorf("failed to read mask: %w", err)
	}

	return mask, nil
}

func readData(reader io.Reader, size uint64, mask []byte) ([]byte, error) {
	payload := make([]byte, size)
	if _, err := io.ReadFull(reader, payload); err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	if mask != nil {
		for i := range payload {
			payload[i] ^= mask[i%4]
		}
	}

	return payload, nil
}
