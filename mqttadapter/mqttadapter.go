// Package mqttadapter streams animation attribute writes over MQTT so a
// remote process can render them. Each write publishes the serialized value
// to <Prefix>/<target>/<attribute>; subscribers apply messages to whatever
// surface they own. The adapter carries no timeline capability, so engines
// using it always run the software frame loop.
package mqttadapter

import (
	"github.com/eclipse/paho.mqtt.golang"

	"github.com/phanxgames/sway"
)

// Config configures an Adapter.
type Config struct {
	// Prefix is the topic the adapter publishes under. Defaults to "sway".
	Prefix string
	// QoS for publishes. Frame streams usually run at 0; higher levels make
	// every frame block on broker acknowledgement.
	QoS byte
	// Retain marks published values as retained, so late subscribers
	// immediately see the last rendered frame.
	Retain bool
}

// Adapter publishes attribute writes to an MQTT broker. The caller owns the
// client and its connection lifecycle; the adapter only publishes.
type Adapter struct {
	client mqtt.Client
	prefix string
	qos    byte
	retain bool
	failed sway.OncePerTarget
}

// New returns an Adapter publishing through client.
func New(client mqtt.Client, cfg Config) *Adapter {
	if cfg.Prefix == "" {
		cfg.Prefix = "sway"
	}
	return &Adapter{
		client: client,
		prefix: cfg.Prefix,
		qos:    cfg.QoS,
		retain: cfg.Retain,
	}
}

// IsConnected implements sway.Adapter. A dropped broker connection reads as
// a detached surface, which pauses the frame loop until the client
// reconnects and the host resumes playback.
func (a *Adapter) IsConnected() bool {
	return a.client.IsConnected()
}

// SetAttribute implements sway.Adapter. Publishes synchronously, the way a
// frame streamer does; at QoS 0 the token completes immediately. A failed
// publish warns once per target and then goes silent for that target.
func (a *Adapter) SetAttribute(targetID, name, value string) {
	topic := a.prefix + "/" + targetID + "/" + name
	token := a.client.Publish(topic, a.qos, a.retain, []byte(value))
	token.Wait()
	if err := token.Error(); err != nil {
		if a.failed.First(targetID) {
			sway.Logger().Warn("mqttadapter: publish failed", "topic", topic, "err", err)
		}
		return
	}
}
