package timerhost

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"splitwatch/splitter"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

const dialTimeout = 2 * time.Second

// Client is a LiveSplit Server client. The connection is dialed lazily and
// redialed on the next command after any failure, so a timer that comes up
// late or restarts is picked up without agent involvement.
type Client struct {
	addr string
	conn net.Conn
	log  *logger.Logger
}

// NewClient returns a client for the given host:port. No connection is made
// until the first command.
func NewClient(addr string) *Client {
	return &Client{
		addr: addr,
		log:  logger.NewLogger(coloransi.Color(coloransi.ColorPink, coloransi.ColorOrange, "timerhost")),
	}
}

// Close drops the connection if one is open.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Apply delivers one timing action to the timer.
func (c *Client) Apply(a splitter.Action) error {
	switch a {
	case splitter.ActionStart:
		// The timer's real-time clock is irrelevant; game time is pushed
		// every tick, so it stays paused on the host side
		if err := c.send("starttimer"); err != nil {
			return err
		}
		if err := c.send("initgametime"); err != nil {
			return err
		}
		return c.send("pausegametime")
	case splitter.ActionSplit, splitter.ActionFinish:
		return c.send("split")
	case splitter.ActionPause:
		return c.send("pause")
	case splitter.ActionResume:
		return c.send("resume")
	case splitter.ActionReset:
		return c.send("reset")
	case splitter.ActionNone:
		return nil
	}
	return fmt.Errorf("unknown action %v", a)
}

// SetGameTime pushes the current in-game time.
func (c *Client) SetGameTime(d time.Duration) error {
	return c.send("setgametime " + strconv.FormatFloat(d.Seconds(), 'f', 2, 64))
}

func (c *Client) send(cmd string) error {
	if c.conn == nil {
		conn, err := net.DialTimeout("tcp", c.addr, dialTimeout)
		if err != nil {
			return fmt.Errorf("dial timer host %s: %w", c.addr, err)
		}
		c.log.Infoln("Connected to timer host", c.addr)
		c.conn = conn
	}

	if _, err := c.conn.Write([]byte(cmd + "\r\n")); err != nil {
		// Drop the connection; the next command redials
		c.conn.Close()
		c.conn = nil
		return fmt.Errorf("send %q: %w", cmd, err)
	}

	c.log.Debugln("Sent", cmd)
	return nil
}
