// Package client talks to a running `xbat serve` daemon.
package client

import (
	"context"
	"encoding/json"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/xbat/internal/client"
	"github.com/charlie0129/xbat/pkg/config"
	"github.com/charlie0129/xbat/pkg/powerinfo"
	"github.com/charlie0129/xbat/pkg/snapshot"
)

// Client wraps the socket transport with typed calls.
type Client struct {
	*client.Client
}

func NewClient(socketPath string) *Client {
	return &Client{Client: client.NewClient(socketPath)}
}

func (c *Client) GetInfo(ctx context.Context) (*powerinfo.BatteryInfo, error) {
	ret, err := c.Get(ctx, "/info")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get battery info")
	}

	var info powerinfo.BatteryInfo
	if err := json.Unmarshal([]byte(ret), &info); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal battery info")
	}
	return &info, nil
}

func (c *Client) GetInfos(ctx context.Context) ([]powerinfo.BatteryInfo, error) {
	ret, err := c.Get(ctx, "/infos")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get battery infos")
	}

	var infos []powerinfo.BatteryInfo
	if err := json.Unmarshal([]byte(ret), &infos); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal battery infos")
	}
	return infos, nil
}

func (c *Client) GetDetails(ctx context.Context) (string, error) {
	ret, err := c.Get(ctx, "/details")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get raw details")
	}
	return ret, nil
}

func (c *Client) GetStatus(ctx context.Context) (string, error) {
	ret, err := c.Get(ctx, "/status")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get charge status")
	}
	return unquote(ret)
}

func (c *Client) GetConfig(ctx context.Context) (*config.RawFileConfig, error) {
	ret, err := c.Get(ctx, "/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}
	return &conf, nil
}

func (c *Client) GetVersion(ctx context.Context) (string, error) {
	ret, err := c.Get(ctx, "/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}
	return unquote(ret)
}

// Snapshot fetches every battery and the raw details from the daemon. The
// daemon takes a separate snapshot per request, so the two halves may be
// a moment apart.
func (c *Client) Snapshot(ctx context.Context) (snapshot.Snapshot, error) {
	infos, err := c.GetInfos(ctx)
	if err != nil {
		return nil, err
	}
	details, err := c.GetDetails(ctx)
	if err != nil {
		return nil, err
	}
	return &remoteSnapshot{infos: infos, details: details}, nil
}

type remoteSnapshot struct {
	infos   []powerinfo.BatteryInfo
	details string
}

func (s *remoteSnapshot) PrimaryInfo() powerinfo.BatteryInfo {
	if len(s.infos) == 0 {
		return powerinfo.BatteryInfo{}
	}
	return s.infos[0]
}

func (s *remoteSnapshot) AllInfos() []powerinfo.BatteryInfo {
	return append([]powerinfo.BatteryInfo(nil), s.infos...)
}

func (s *remoteSnapshot) Details() string {
	return s.details
}

func unquote(ret string) (string, error) {
	var s string
	if err := json.Unmarshal([]byte(ret), &s); err != nil {
		return "", pkgerrors.Wrapf(err, "unexpected response: %s", ret)
	}
	return s, nil
}
