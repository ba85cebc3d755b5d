package delaunay

// Insert exposes a single Bowyer-Watson insertion step to tests.
var Insert = insert
