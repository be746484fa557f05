package broker

import (
	"context"
	"encoding/json"

	"github.com/digitalseva/courseshop/fulfillment"

	extErrors "github.com/pkg/errors"
	"github.com/streadway/amqp"
)

var _ fulfillment.Producer = &AMQPBroker{}
var _ fulfillment.Consumer = &AMQPBroker{}

const (
	fulfillmentExchange string = "fulfillment"

	customerSavedKey   string = "customer.saved"
	customerSavedQueue string = "fulfillment_customer_saved"
)

// AMQPBroker describes a message broker via RabbitMQ
type AMQPBroker struct {
	connection *amqp.Connection
	channel    *amqp.Channel
}

// NewAMQPBroker returns a Message Broker over RabbitMQ
func NewAMQPBroker(amqpURI string) (*AMQPBroker, error) {
	amqpConn, err := amqp.Dial(amqpURI)
	if err != nil {
		return nil, extErrors.Wrap(err, "Cannot connect to Message Broker")
	}
	amqpChan, err := amqpConn.Channel()
	if err != nil {
		return nil, extErrors.Wrap(err, "Cannot create broker channel")
	}
	broker := &AMQPBroker{
		connection: amqpConn,
		channel:    amqpChan,
	}
	if err := broker.setupFulfillmentExchange(); err != nil {
		return nil, extErrors.Wrap(err, "Cannot declare exchange for fulfillment events")
	}

	return broker, nil
}

func (a *AMQPBroker) setupFulfillmentExchange() error {
	return a.channel.ExchangeDeclare(
		fulfillmentExchange, // name
		"direct",            // type
		true,                // durable
		false,               // auto-deleted
		false,               // internal
		false,               // no-wait
		nil,                 // arguments
	)
}

// Close will close the channel and connection to release resources
func (a *AMQPBroker) Close() {
	a.channel.Close()
	a.connection.Close()
}

func (a *AMQPBroker) publishViaRoutingKey(exchange, routingKey string, body []byte) error {
	return a.channel.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// PublishCustomerSaved will announce a freshly saved customer record so the
// fulfillment worker can deliver course access
func (a *AMQPBroker) PublishCustomerSaved(e *fulfillment.CustomerSaved) error {
	jsonBytes, err := json.Marshal(e)
	if err != nil {
		return extErrors.Wrap(err, "Cannot encode message into bytes")
	}
	if err := a.publishViaRoutingKey(fulfillmentExchange, customerSavedKey, jsonBytes); err != nil {
		return extErrors.Wrap(err, "Cannot publish CustomerSaved event")
	}
	return nil
}

func (a *AMQPBroker) setupQueue(qName string) error {
	_, err := a.channel.QueueDeclare(
		qName,
		true,
		false,
		false,
		false,
		nil,
	)
	return err
}

func (a *AMQPBroker) bindAndGetMsgChan(qName, exchange, routingKey string) (<-chan amqp.Delivery, error) {
	if err := a.channel.QueueBind(
		qName,
		routingKey,
		exchange,
		false,
		nil,
	); err != nil {
		return nil, err
	}
	msgChan, err := a.channel.Consume(
		qName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	return msgChan, err
}

// ReceiveCustomerSaved returns a channel of CustomerSaved events, closed
// over the lifetime of the given context
func (a *AMQPBroker) ReceiveCustomerSaved(ctx context.Context) (<-chan *fulfillment.CustomerSaved, error) {
	if err := a.setupQueue(customerSavedQueue); err != nil {
		return nil, extErrors.Wrap(err, "Cannot setup queue")
	}
	msgChan, err := a.bindAndGetMsgChan(customerSavedQueue, fulfillmentExchange, customerSavedKey)
	if err != nil {
		return nil, extErrors.Wrap(err, "Cannot setup consumer")
	}
	rChan := make(chan *fulfillment.CustomerSaved)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d := <-msgChan:
				var e fulfillment.CustomerSaved
				if err := json.Unmarshal(d.Body, &e); err != nil {
					d.Nack(false, false)
					continue
				}
				rChan <- &e
				d.Ack(false)
			}
		}
	}()
	return rChan, nil
}
