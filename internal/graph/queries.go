package graph

// connectionsProjection returns the target properties and every relationship
// touching it, tagged with its direction.
const connectionsProjection = `OPTIONAL MATCH (target)-[r]-(connected)
RETURN properties(target) AS target,
       COLLECT({
           relationship: TYPE(r),
           direction: CASE WHEN startNode(r) = target THEN 'OUTGOING' ELSE 'INCOMING' END,
           connected: properties(connected)
       }) AS connections`

const movieByIDQuery = `MATCH (target:Movie {id: $id})
` + connectionsProjection

const moviesByIDsQuery = `UNWIND $ids AS id
MATCH (target:Movie {id: id})
` + connectionsProjection

const moviesByTitlesQuery = `UNWIND $titles AS search_title
MATCH (target:Movie)
WHERE target.title = search_title
` + connectionsProjection

const pingQuery = "RETURN 1"
