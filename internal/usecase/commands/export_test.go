package commands

var RetryDelay = retryDelay
