package main

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"recipeshare/internal/api/routes/recipes"
	"recipeshare/internal/config"
	"recipeshare/internal/env"
	"recipeshare/internal/event"
	"recipeshare/internal/log"
	"recipeshare/internal/setup"
)

var environment *env.Env

func init() {
	logger := log.New(nil)

	conf, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	st, err := setup.Store(context.Background(), conf)
	if err != nil {
		panic("failed to setup store: " + err.Error())
	}

	// The list handler issues no upload grants.
	environment = &env.Env{
		Logger: logger,
		Store:  st,
		Config: conf,
	}
}

func handler(ctx context.Context, raw json.RawMessage) (events.APIGatewayProxyResponse, error) {
	envelope := recipes.List(ctx, environment, event.FromLambda(raw))
	return events.APIGatewayProxyResponse{
		StatusCode: envelope.StatusCode,
		Headers:    envelope.Headers,
		Body:       envelope.Body,
	}, nil
}

func main() {
	awslambda.Start(handler)
}
