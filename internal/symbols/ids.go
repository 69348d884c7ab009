package symbols

// TableID identifies a table inside a Tables arena.
type TableID uint32

const NoTableID TableID = 0

func (id TableID) IsValid() bool { return id != NoTableID }

// ScopeID identifies a scope in the Scopes arena.
type ScopeID uint32

const NoScopeID ScopeID = 0

func (id ScopeID) IsValid() bool { return id != NoScopeID }
