package model

// Multihash describes an IPFS digest that parses as a multihash.
type Multihash struct {
	Function string `json:"function"`
	Length   int    `json:"length"`
	CIDv1    string `json:"cidV1"`
}

// Digest is the JSON projection of metadata.Digest.
type Digest struct {
	// Network is "ipfs" or "swarm".
	Network string `json:"network"`
	// Value is base58 for IPFS, lowercase hex for Swarm.
	Value string `json:"value"`
	// URI is ipfs://<value> or bzz://<value>.
	URI string `json:"uri"`
	// Raw is the 0x-prefixed hex of the digest bytes.
	Raw       string     `json:"raw"`
	Multihash *Multihash `json:"multihash,omitempty"`
}

type CompilerVersion struct {
	Major uint8  `json:"major"`
	Minor uint8  `json:"minor"`
	Patch uint8  `json:"patch"`
	Text  string `json:"text"`
}

// Metadata is the JSON boundary view of a decoded metadata trailer.
type Metadata struct {
	Digest          *Digest          `json:"digest,omitempty"`
	Experimental    bool             `json:"experimental"`
	CompilerVersion *CompilerVersion `json:"compilerVersion,omitempty"`
	// GatewayURL is set for IPFS digests when a gateway prefix is configured.
	GatewayURL string `json:"gatewayURL,omitempty"`
	// StrippedCodeHash is the Keccak-256 of the bytecode without its trailer.
	StrippedCodeHash string `json:"strippedCodeHash,omitempty"`
}
