/*
Package bitvec holds the shared plumbing of the bit vector implementations
in package bitvector: the process-wide redis client, its connection options,
the package logger and redis key generation.

In-memory bit vectors need none of it. Redis backed ones need a client:

	options, err := bitvec.ParseRedisURI("redis://localhost:6379")
	if err != nil {
		return err
	}
	bitvec.MakeRedisClient(*options)
*/
package bitvec
