package errorx

type Code int

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010

	// Membership codes
	AlreadyJoined Code = 500001
	NotJoined     Code = 500002
	NotJoinable   Code = 500003
	PoolNotEmpty  Code = 500004

	// Pool lifecycle codes
	PoolNotFound      Code = 500101
	PoolAlreadyExists Code = 500102
	InvalidFee        Code = 500103

	// Balance codes
	InsufficientFunds     Code = 500201
	MaximumRewardExceeded Code = 500202

	// Authorization and serialization codes
	InvalidSignature Code = 500301
	InvalidAmount    Code = 500302
	InvalidFormat    Code = 500303
	Unauthorized     Code = 500304

	// Claim codes
	RewardAlreadyClaimed Code = 500401
	TransferFailed       Code = 500402
	FeeTransferFailed    Code = 500403
	Reentrancy           Code = 500404

	// Deposit codes
	DepositNotFound       Code = 500501
	DepositNotValid       Code = 500502
	DepositAlreadyClaimed Code = 500503
)
