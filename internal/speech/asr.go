package speech

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	sampleRate = 16000
	// chunkSize is 200ms of 16kHz 16-bit mono PCM
	chunkSize = 6400
)

// ASRClient transcribes recorded PCM audio with the Volcengine streaming
// speech recognition service.
type ASRClient struct {
	Endpoint    string
	AppID       string
	AccessToken string
	ResourceID  string
	Language    string
	// ChunkInterval paces audio chunks like a live stream
	ChunkInterval time.Duration

	dialer *websocket.Dialer
	logger *zap.Logger
}

// NewASRClient creates a client for the given endpoint
func NewASRClient(endpoint, appID, accessToken, resourceID, language string, timeout time.Duration, logger *zap.Logger) *ASRClient {
	return &ASRClient{
		Endpoint:      endpoint,
		AppID:         strings.TrimSpace(appID),
		AccessToken:   strings.TrimSpace(accessToken),
		ResourceID:    resourceID,
		Language:      language,
		ChunkInterval: 200 * time.Millisecond,
		dialer:        &websocket.Dialer{HandshakeTimeout: timeout},
		logger:        logger,
	}
}

type asrRequest struct {
	User struct {
		UID string `json:"uid"`
	} `json:"user"`
	Audio struct {
		Language string `json:"language,omitempty"`
		Format   string `json:"format"`
		Codec    string `json:"codec"`
		Rate     int    `json:"rate"`
		Bits     int    `json:"bits"`
		Channel  int    `json:"channel"`
	} `json:"audio"`
	Request struct {
		ModelName  string `json:"model_name"`
		EnableITN  bool   `json:"enable_itn"`
		EnablePunc bool   `json:"enable_punc"`
		ResultType string `json:"result_type"`
	} `json:"request"`
}

type asrResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Result  struct {
		Text       string `json:"text"`
		Utterances []struct {
			Text string `json:"text"`
		} `json:"utterances"`
	} `json:"result"`
}

// transcript prefers the full text and falls back to joined utterances
func (r *asrResponse) transcript() string {
	if r.Result.Text != "" {
		return r.Result.Text
	}
	parts := make([]string, 0, len(r.Result.Utterances))
	for _, u := range r.Result.Utterances {
		if u.Text != "" {
			parts = append(parts, u.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Transcribe sends pcm (16kHz, 16-bit, mono) and returns the final transcript
func (c *ASRClient) Transcribe(ctx context.Context, pcm []byte) (string, error) {
	if c.AppID == "" || c.AccessToken == "" {
		return "", errors.New("speech app id or access token is not configured")
	}
	if len(pcm) == 0 {
		return "", errors.New("no audio data to send")
	}

	connectID := uuid.NewString()
	header := http.Header{}
	header.Set("X-Api-App-Key", c.AppID)
	header.Set("X-Api-Access-Key", c.AccessToken)
	header.Set("X-Api-Resource-Id", c.ResourceID)
	header.Set("X-Api-Connect-Id", connectID)

	conn, resp, err := c.dialer.DialContext(ctx, c.Endpoint, header)
	if err != nil {
		return "", fmt.Errorf("failed to connect to ASR service: %w", err)
	}
	defer conn.Close()

	if logid := resp.Header.Get("X-Tt-Logid"); logid != "" {
		c.logger.Debug("connected to ASR service", zap.String("logid", logid), zap.String("connect_id", connectID))
	}

	if err := c.sendRequest(conn, connectID); err != nil {
		return "", err
	}

	g, gctx := errgroup.WithContext(ctx)

	// Unblock the reader when the exchange ends or fails
	go func() {
		<-gctx.Done()
		conn.Close()
	}()

	g.Go(func() error {
		return c.sendAudio(gctx, conn, pcm)
	})

	var text string
	g.Go(func() error {
		var err error
		text, err = c.receive(conn)
		return err
	})

	if err := g.Wait(); err != nil {
		return "", err
	}
	return text, nil
}

func (c *ASRClient) sendRequest(conn *websocket.Conn, uid string) error {
	var req asrRequest
	req.User.UID = uid
	req.Audio.Language = c.Language
	req.Audio.Format = "pcm"
	req.Audio.Codec = "raw"
	req.Audio.Rate = sampleRate
	req.Audio.Bits = 16
	req.Audio.Channel = 1
	req.Request.ModelName = "bigmodel"
	req.Request.EnableITN = true
	req.Request.EnablePunc = true
	req.Request.ResultType = "full"

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal ASR request: %w", err)
	}

	msg, err := NewFullClientRequest(payload)
	if err != nil {
		return err
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, msg.Encode()); err != nil {
		return fmt.Errorf("failed to send ASR request: %w", err)
	}
	return nil
}

func (c *ASRClient) sendAudio(ctx context.Context, conn *websocket.Conn, pcm []byte) error {
	// Sequence 1 belongs to the full client request
	sequence := int32(2)

	for start := 0; start < len(pcm); start += chunkSize {
		end := min(start+chunkSize, len(pcm))
		last := end == len(pcm)

		msg, err := NewAudioRequest(pcm[start:end], sequence, last)
		if err != nil {
			return err
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, msg.Encode()); err != nil {
			return fmt.Errorf("failed to send audio chunk: %w", err)
		}
		if last {
			return nil
		}
		sequence++

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.ChunkInterval):
		}
	}
	return nil
}

func (c *ASRClient) receive(conn *websocket.Conn) (string, error) {
	var text string
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return "", fmt.Errorf("failed to read ASR response: %w", err)
		}

		msg, err := DecodeMessage(data)
		if err != nil {
			return "", fmt.Errorf("failed to decode ASR message: %w", err)
		}

		switch msg.Header.Type {
		case ErrorMessage:
			body, _ := msg.Body()
			return "", fmt.Errorf("ASR error %d: %s", msg.ErrorCode, string(body))

		case FullServerResponse:
			body, err := msg.Body()
			if err != nil {
				return "", fmt.Errorf("failed to decompress ASR payload: %w", err)
			}

			var resp asrResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				c.logger.Debug("skipping unreadable ASR response", zap.Error(err))
				continue
			}
			if resp.Code != 0 && resp.Code != 20000000 {
				return "", fmt.Errorf("ASR API error %d: %s", resp.Code, resp.Message)
			}

			if t := resp.transcript(); t != "" {
				text = t
			}
			if msg.IsLast() {
				return text, nil
			}
		}
	}
}
