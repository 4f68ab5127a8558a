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
	// FldIP is the IP address used in the log entry
	FldIP = "ip"
	// FldMethod is the HTTP method of the request being logged
	FldMethod = "method"
	// FldID is the ID of an entity used in the log entry
	FldID = "id"
	// FldVenue is the ID of a venue
	FldVenue = "venue"
	// FldArtist is the ID of an artist
	FldArtist = "artist"
	// FldSearch is a search term used in a serach
	FldSearch = "search"
	// FldDuration is the time an operation took
	FldDuration = "took"
)
