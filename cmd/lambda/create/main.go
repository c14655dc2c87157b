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

	ctx := context.Background()
	st, err := setup.Store(ctx, conf)
	if err != nil {
		panic("failed to setup store: " + err.Error())
	}
	issuer, err := setup.Grants(ctx, conf, logger)
	if err != nil {
		panic("failed to setup upload grants: " + err.Error())
	}

	environment = &env.Env{
		Logger: logger,
		Store:  st,
		Grants: issuer,
		Config: conf,
	}
}

// handler accepts the raw gateway event so both API Gateway payload
// versions dispatch through the same normalization.
func handler(ctx context.Context, raw json.RawMessage) (events.APIGatewayProxyResponse, error) {
	envelope := recipes.Create(ctx, environment, event.FromLambda(raw))
	return events.APIGatewayProxyResponse{
		StatusCode: envelope.StatusCode,
		Headers:    envelope.Headers,
		Body:       envelope.Body,
	}, nil
}

func main() {
	awslambda.Start(handler)
}
