package grpcmeta

import (
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/solcmeta/metadata"
)

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.InvalidArgument:
		// Server sends "<RuleID>: <message>" for decoder errors.
		rule, msg, found := strings.Cut(st.Message(), ": ")
		if !found {
			return err
		}
		if e := metadata.FromRule(rule, msg); e != nil {
			return e
		}
		return err
	default:
		return err
	}
}
