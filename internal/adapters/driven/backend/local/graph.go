package local

import (
	"context"
	"fmt"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

// FetchGraphData assembles a fresh graph snapshot from the store. Links
// whose endpoints are missing from the node set are dropped, so a
// partially built graph still renders.
func (b *Backend) FetchGraphData(ctx context.Context, mode domain.GraphViewMode) (*domain.GraphData, error) {
	events, err := b.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	docs, err := b.store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	entities, err := b.store.ListEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	edges, err := b.store.ListEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing edges: %w", err)
	}

	data := &domain.GraphData{}
	entityOnly := mode == domain.ViewModeEntities

	if !entityOnly {
		for _, ev := range events {
			data.Nodes = append(data.Nodes, &domain.GraphNode{
				ID:    ev.ID,
				Group: domain.GroupEvent,
				Label: "Import Session",
				Info:  ev.Source,
				Val:   domain.ValEvent,
			})
		}
	}

	for _, doc := range docs {
		if !entityOnly {
			data.Nodes = append(data.Nodes, &domain.GraphNode{
				ID:    doc.ID,
				Group: domain.GroupDocument,
				Label: doc.Filename,
				Info:  doc.DisplayTitle(),
				Val:   domain.ValDocument,
			})

			data.Links = append(data.Links, &domain.GraphLink{
				Source: doc.EventID,
				Target: doc.ID,
				Label:  domain.RelImported,
			})

			for _, chunk := range doc.Chunks {
				data.Nodes = append(data.Nodes, &domain.GraphNode{
					ID:    chunk.ID,
					Group: domain.GroupChunk,
					Label: fmt.Sprintf("p.%d", chunk.PageIndex),
					Val:   domain.ValChunk,
				})
				data.Links = append(data.Links, &domain.GraphLink{
					Source: doc.ID,
					Target: chunk.ID,
					Label:  domain.RelContains,
				})
			}
		}
	}

	chunkOwner := make(map[string]string)
	for _, doc := range docs {
		for _, chunk := range doc.Chunks {
			chunkOwner[chunk.ID] = doc.ID
		}
	}

	for _, ent := range entities {
		data.Nodes = append(data.Nodes, &domain.GraphNode{
			ID:    ent.ID,
			Group: domain.GroupEntity,
			Label: ent.Name,
			Info:  ent.Type,
			Val:   domain.ValEntity,
		})
	}

	for _, edge := range edges {
		link := &domain.GraphLink{
			Source: edge.SourceID,
			Target: edge.TargetID,
			Label:  edge.Label,
		}

		// In entity view the mention edges re-anchor from chunks to
		// their parent documents, which are also promoted as nodes.
		if entityOnly && edge.Label == domain.RelMentions {
			if docID, ok := chunkOwner[edge.SourceID]; ok {
				link.Source = docID
			}
		}

		data.Links = append(data.Links, link)
	}

	if entityOnly {
		promoted := make(map[string]bool)
		for _, link := range data.Links {
			if link.Label == domain.RelMentions {
				promoted[link.Source] = true
			}
		}
		for _, doc := range docs {
			if promoted[doc.ID] {
				data.Nodes = append(data.Nodes, &domain.GraphNode{
					ID:    doc.ID,
					Group: domain.GroupDocument,
					Label: doc.Filename,
					Info:  doc.DisplayTitle(),
					Val:   domain.ValDocument,
				})
			}
		}
	}

	data.Links = filterDanglingLinks(data.Nodes, data.Links)
	return data, nil
}

// filterDanglingLinks drops links referencing nodes absent from the set.
func filterDanglingLinks(nodes []*domain.GraphNode, links []*domain.GraphLink) []*domain.GraphLink {
	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = true
	}

	kept := links[:0]
	for _, l := range links {
		if ids[l.Source] && ids[l.Target] {
			kept = append(kept, l)
		}
	}
	return kept
}
