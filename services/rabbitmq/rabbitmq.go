package rabbitmq

import (
	"errors"
	"fmt"
	"nutrirec-go-worker/services/trackLog"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

//MessageBody is the struct for the body passed in the AMQP message. The type will be set on the Request header
type MessageBody struct {
	Data []byte
	Type string
}

//Message is the amqp reply published back to the caller
type Message struct {
	Queue         string
	ContentType   string
	CorrelationID string
	Body          MessageBody
}

//Connection is the connection created
type Connection struct {
	name    string
	url     string
	Conn    *amqp.Connection
	Channel *amqp.Channel
	Queues  []string
	Err     chan error
	ApiErr  chan error
}

var (
	connectionPool = make(map[string]*Connection)
	poolMutex      sync.Mutex
)

//NewConnection returns the new connection object
func NewConnection(name, url string, queues []string) *Connection {
	poolMutex.Lock()
	defer poolMutex.Unlock()
	if c, ok := connectionPool[name]; ok {
		return c
	}
	c := &Connection{
		name:   name,
		url:    url,
		Queues: queues,
		Err:    make(chan error),
		ApiErr: make(chan error, 1),
	}
	connectionPool[name] = c
	return c
}

//GetConnection returns the connection which was instantiated
func GetConnection(name string) *Connection {
	poolMutex.Lock()
	defer poolMutex.Unlock()
	return connectionPool[name]
}

func (c *Connection) Connect() error {
	var err error
	c.Conn, err = amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("Error in creating rabbitmq connection for %s : %s", c.name, err.Error())
	}
	go func() {
		<-c.Conn.NotifyClose(make(chan *amqp.Error)) //Listen to NotifyClose
		c.Err <- errors.New("Connection Closed")
		select {
		case c.ApiErr <- errors.New("Api detect Connection Closed"):
		default:
		}
	}()
	c.Channel, err = c.Conn.Channel()
	if err != nil {
		return fmt.Errorf("Channel: %s", err)
	}
	return nil
}

func (c *Connection) BindQueue() error {
	for _, q := range c.Queues {
		if _, err := c.Channel.QueueDeclare(q, false, false, false, false, nil); err != nil {
			return fmt.Errorf("error in declaring the queue %s", err)
		}
	}
	return nil
}

//Reconnect reconnects the connection
func (c *Connection) Reconnect() error {
	if err := c.Connect(); err != nil {
		return err
	}
	if err := c.BindQueue(); err != nil {
		return err
	}
	return nil
}

func (c *Connection) Consume() (map[string]<-chan amqp.Delivery, error) {
	m := make(map[string]<-chan amqp.Delivery)
	for _, q := range c.Queues {
		deliveries, err := c.Channel.Consume(q, "", true, false, false, false, nil)
		if err != nil {
			return nil, err
		}
		m[q] = deliveries
	}
	return m, nil
}

// Publish 回覆給 ReplyTo 指定的 queue
func (c *Connection) Publish(m Message) error {
	if c.Channel == nil {
		return errors.New("channel not opened")
	}
	return c.Channel.Publish("", m.Queue, false, false, amqp.Publishing{
		ContentType:   m.ContentType,
		CorrelationId: m.CorrelationID,
		Type:          m.Body.Type,
		Body:          m.Body.Data,
	})
}

func (c *Connection) HandleConsumedDeliveries(q string, delivery <-chan amqp.Delivery, fn func(*Connection, string, <-chan amqp.Delivery)) {
	trackLog.Info(fmt.Sprintf("[HandleConsumedDeliveries] Queue[%s] delivery received", q), false)
	for {
		go fn(c, q, delivery)
		if err := <-c.Err; err != nil {
			for {
				if err := c.Reconnect(); err != nil {
					trackLog.Error(err.Error(), true)
				}

				deliveries, err := c.Consume()
				if err != nil {
					time.Sleep(60 * time.Second)
					trackLog.Info("rabbitmq reconnect, try again", false)
				} else {
					trackLog.Info("rabbitmq reconnect ok", true)
					delivery = deliveries[q]
					break
				}
			}
		}
	}
}
