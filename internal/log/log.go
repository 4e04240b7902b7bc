package log

const (
	// FldFile is the name of the log field for storing file name information
	FldFile = "file"
	// FldPath is the name of the log field for storing path name information
	FldPath = "path"
	// FldTransport is the name of the log field for storing a transport name
	FldTransport = "transport"
	// FldVersion is the version number of the application
	FldVersion = "ver"
	// FldID is the ID of an entity used in the log entry
	FldID = "id"
	// FldName is the name of an entity used in the log entry
	FldName = "name"
	// FldVenue is the ID of the venue referenced in the log entry
	FldVenue = "venue"
	// FldArtist is the ID of the artist referenced in the log entry
	FldArtist = "artist"
	// FldSearch is a search term used in a serach
	FldSearch = "search"
	// FldMethod is the HTTP method of the request that is logged
	FldMethod = "method"
	// FldLimit is the requested result limit
	FldLimit = "limit"
	// FldCode is the machine-readable code of an error
	FldCode = "code"
	// FldEnv is the name of an environment variable
	FldEnv = "env"
	// FldPanic holds the value a recovered panic has been raised with
	FldPanic = "panic"
)
