// Package chaingate and its sub-packages implement the backend services of a gateway to multiple blockchains.
/*
chaingate provides you with two microservices:

1) a gateway microservice (package gateway) that implements a RESTful API to read transactions, blocks and tokens of
 the configured coins and networks and to broadcast signed transactions to them.

2) a tracker microservice (package tracker) that follows the transactions broadcast through the gateway until they
 are mined.

Architecture

A coin is served by a bundle of three providers (package lib/block): a transaction provider, a block provider and a
token provider. The bundles are kept in a registry keyed by coin that is built at startup from the JSON config file.
Backends are provided for ethereum, bitcoin-family and solana nodes, and every call they make to a node is rate
limited, retried when it is a transient read failure, and monitored (package lib/block/node).

Every request to the gateway names a network and a coin. The coin selects the bundle, the network is passed to the
provider. Any failure is replied with status 400 and a JSON body containing the error message. When a node rejects a
broadcast transaction, the message is annotated with the current block height of the network and the rejected
payload.

After a successful broadcast, the gateway records the transaction in its database (package lib/store) and publishes
it to the message broker (package lib/msg). Both layers are product agnostic and configured in the JSON config file.
The tracker service loads the pending transactions from the database, consumes the new ones from the broker and polls
the nodes until each one is confirmed, failed or dropped.

The microservices can also be monitored via a Prometheus API by setting the flag "-m" at startup.

Gateway

The gateway microservice can be started running cmd/gateway/main.go. Routes are prefixed with /v1/{network}/{coin}:

	GET  /tx/id/{txId}                        transaction details
	GET  /tx/block/{block}                    transactions of the block with hash {block}
	GET  /tx/height/{height}                  summary of the transactions of the block at {height}
	GET  /tx/height/{height}/{includeDetails} same, with the details of each transaction if includeDetails is true
	POST /tx/raw                              broadcast {"rawTx": "..."}, replies {"txId": "..."}
	GET  /block/height                        current block height
	GET  /tokens                              tokens served on the network
	GET  /tokens/{token}                      token metadata

GET /v1/coins replies the coins served.

Tracker

The tracker microservice can be started running cmd/tracker/main.go with the same configuration as the gateway.

*/
package chaingate
