package mptcph

// TCP option kind used for every MPTCP suboption (spec.md §6).
const Kind = 30

// Suboption subtypes, the high nibble of the byte following kind/length
// (spec.md §4.1).
const (
	SubCapable = 0
	SubJoin    = 1
	SubDSS     = 2
	SubAddAddr = 3
	SubFail    = 6
)

// Fixed suboption lengths in bytes, including the kind/length header
// (spec.md §6). The draft-era lengths are preserved verbatim; this
// module does not aim for RFC 6824/8684 wire compatibility.
const (
	LenCapableSyn    = 4
	LenCapableSynAck = 12
	LenCapableAck    = 20

	LenJoinSyn    = 12
	LenJoinSynAck = 16
	LenJoinAck    = 24

	LenDSSBase    = 4
	LenDSSAck     = 4
	LenDSSSeq     = 10
	LenDSSSeqCsum = 12

	LenAddAddr4    = 8
	LenAddAddr6    = 20
	LenAddAddrPort = 2

	LenFail = 8
)

// MP_JOIN HMAC sizes, per original_source/include/net/mptcp.h: the ACK
// carries the full HMACSize-byte HMAC, the SYN-ACK a truncated HMAC of
// 2*JoinHMAC32 (8) bytes.
const (
	HMACSize   = 20
	JoinHMAC32 = 4
)

// DSS flag bits within the second suboption byte (big-endian bitfield
// sub(4) rsv(4) rsv2(3) F(1) m(1) M(1) a(1) A(1), spec.md §6).
const (
	DSSFlagA  = 1 << 0
	DSSFlagA2 = 1 << 1 // reserved "a" extension bit
	DSSFlagM  = 1 << 2
	DSSFlagM2 = 1 << 3 // reserved "m" extension bit
	DSSFlagF  = 1 << 4
)

// InfiniteMappingLen is the sentinel data_len carried once a subflow
// has switched to infinite-mapping mode (spec.md §4.2).
const InfiniteMappingLen = 0xFFFF

// Generic netlink family used by mpnl to carry PM events, matching the
// role of the real kernel's userspace path-manager API.
const (
	PMGenlFamily  = "mptcp_pm"
	PMGenlMcgroup = "mptcp_pm_events"
	PMGenlVersion = 1
)

// mpnl commands.
const (
	PMCmdUnspec = iota
	PMCmdAddAddr
	PMCmdDelAddr
	PMCmdGetAddr
	PMCmdSubflowCreate
	PMCmdSubflowDestroy
	PMCmdAnnounce
)

// mpnl attributes.
const (
	PMAttrUnspec = iota
	PMAttrToken
	PMAttrAddrID
	PMAttrFamily
	PMAttrAddr4
	PMAttrAddr6
	PMAttrPort
	PMAttrPathIndex
	PMAttrBackup
)
