package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/xbat/pkg/config"
	"github.com/charlie0129/xbat/pkg/snapshot"
	"github.com/charlie0129/xbat/pkg/version"
)

// take answers the request itself when the snapshot fails.
func (s *Server) take(c *gin.Context) (snapshot.Snapshot, bool) {
	snap, err := s.open(c.Request.Context())
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, snapshot.ErrPlatformUnsupported) {
			code = http.StatusNotImplemented
		}
		c.JSON(code, gin.H{"error": err.Error()})
		_ = c.Error(err)
		return nil, false
	}
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		for i, info := range snap.AllInfos() {
			if err := info.Validate(); err != nil {
				logrus.WithField("battery", i).Debugf("inconsistent battery info: %v", err)
			}
		}
	}
	return snap, true
}

func (s *Server) getInfo(c *gin.Context) {
	snap, ok := s.take(c)
	if !ok {
		return
	}
	c.IndentedJSON(http.StatusOK, snap.PrimaryInfo())
}

func (s *Server) getInfos(c *gin.Context) {
	snap, ok := s.take(c)
	if !ok {
		return
	}
	c.IndentedJSON(http.StatusOK, snap.AllInfos())
}

func (s *Server) getDetails(c *gin.Context) {
	snap, ok := s.take(c)
	if !ok {
		return
	}
	c.String(http.StatusOK, snap.Details())
}

func (s *Server) getStatus(c *gin.Context) {
	snap, ok := s.take(c)
	if !ok {
		return
	}
	c.IndentedJSON(http.StatusOK, snap.PrimaryInfo().ChargeStatus())
}

func (s *Server) getConfig(c *gin.Context) {
	if s.conf == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no config loaded"})
		return
	}
	fc, err := config.NewRawFileConfigFromConfig(s.conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
