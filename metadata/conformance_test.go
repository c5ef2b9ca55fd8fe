package metadata_test

import (
	"testing"

	"xdao.co/solcmeta/metadata"
	"xdao.co/solcmeta/metadata/metadatatest"
)

func TestDecode_Conformance(t *testing.T) {
	metadatatest.RunDecoderConformance(t, metadata.Decode)
}
