package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"spaedge/pkg/rewrite"
)

// Lambda@Edge origin-request (or viewer-request) handler. The returned
// request is what CloudFront forwards to the origin.
func main() {
	lambda.Start(rewrite.HandleEvent)
}
