package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"chimera-chat-be/internal/constant"
	"chimera-chat-be/internal/dto"
	"chimera-chat-be/internal/entity"
	"chimera-chat-be/internal/pkg/logger"
	"chimera-chat-be/internal/repository/specification"
	"chimera-chat-be/internal/repository/unitofwork"
	"chimera-chat-be/pkg/events"
	"chimera-chat-be/pkg/llm"
	"chimera-chat-be/pkg/media"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// ErrMediaProcessing aborts an interaction before any ledger write: a
// half-recorded conversation is worse than a failed request.
var ErrMediaProcessing = errors.New("failed to process attachment")

type IChatService interface {
	SendChat(ctx context.Context, subject string, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetHistory(ctx context.Context, subject string) ([]*dto.ChatTurnResponse, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	provider       llm.Provider
	mediaStore     *media.Store
	eventPublisher *events.Publisher
	logger         logger.ILogger
	modelTimeout   time.Duration

	// Users are immutable in this service's lifetime, so the email->user
	// resolution done on every protected request is memoized.
	userCache *gocache.Cache

	// One mutex per user serializes the user-turn/ai-turn append pair.
	// Cross-user interactions never contend.
	locksMu sync.Mutex
	locks   map[uuid.UUID]*sync.Mutex
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.Provider,
	mediaStore *media.Store,
	eventPublisher *events.Publisher,
	sysLogger logger.ILogger,
	modelTimeout time.Duration,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		provider:       provider,
		mediaStore:     mediaStore,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
		modelTimeout:   modelTimeout,
		userCache:      gocache.New(5*time.Minute, 10*time.Minute),
		locks:          make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *chatService) SendChat(ctx context.Context, subject string, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	user, err := s.resolveUser(ctx, subject)
	if err != nil {
		return nil, err
	}

	// 1. Media step. Store + encode must both succeed before anything is
	// recorded; on failure nothing reaches the ledger.
	var assetRef *media.AssetRef
	var imageB64, mimeType string
	if len(req.FileBytes) > 0 {
		ref, err := s.mediaStore.Store(user.Id, req.FileBytes, req.FileExtension)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMediaProcessing, err)
		}

		imageB64, err = s.mediaStore.EncodeForModel(ref)
		if err != nil {
			_ = s.mediaStore.Remove(ref)
			return nil, fmt.Errorf("%w: %v", ErrMediaProcessing, err)
		}
		mimeType = media.MimeType(req.FileExtension)
		assetRef = ref
	}

	// 2. Serialize the turn pair for this user. The lock spans the model
	// call so another interaction cannot wedge its turns between this
	// pair; DB writes inside remain short transactions, never held open
	// across the model call.
	lock := s.userLock(user.Id)
	lock.Lock()
	defer lock.Unlock()

	assetId, err := s.recordUserTurn(ctx, user.Id, req.Question, assetRef)
	if err != nil {
		if assetRef != nil {
			_ = s.mediaStore.Remove(assetRef)
		}
		return nil, err
	}

	// 3. The user's utterance is durable; from here the interaction always
	// produces an ai turn, degraded or not.
	replyText, degraded := s.invokeModel(ctx, req.Question, imageB64, mimeType)

	aiTurn := &entity.ChatTurn{
		Id:        uuid.New(),
		UserId:    user.Id,
		Role:      constant.ChatTurnRoleAi,
		Content:   replyText,
		CreatedAt: time.Now(),
	}
	if err := s.uowFactory.NewUnitOfWork(ctx).ChatTurnRepository().Create(ctx, aiTurn); err != nil {
		return nil, fmt.Errorf("append ai turn: %w", err)
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeChatInteraction,
			Data: map[string]interface{}{
				"user_id":   user.Id.String(),
				"has_image": assetId != nil,
				"degraded":  degraded,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("chat", "failed to publish CHAT_INTERACTION event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.SendChatResponse{
		Response:       replyText,
		ImageId:        assetId,
		AnnotatedImage: nil,
	}, nil
}

func (s *chatService) GetHistory(ctx context.Context, subject string) ([]*dto.ChatTurnResponse, error) {
	user, err := s.resolveUser(ctx, subject)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.ChatTurnRepository().FindAll(ctx,
		specification.OwnedBy{UserID: user.Id},
		specification.OrderByCreatedAtAsc{},
	)
	if err != nil {
		return nil, err
	}

	history := make([]*dto.ChatTurnResponse, len(turns))
	for i, turn := range turns {
		history[i] = &dto.ChatTurnResponse{
			Id:        turn.Id,
			UserId:    turn.UserId,
			Role:      turn.Role,
			Content:   turn.Content,
			ImageId:   turn.MediaAssetId,
			CreatedAt: turn.CreatedAt,
		}
	}
	return history, nil
}

// recordUserTurn makes the user's utterance durable. When an attachment is
// present the MediaAsset row and the user turn commit in one transaction,
// so the ledger never references an asset row that was lost, and a failed
// turn append leaves no orphan asset behind.
func (s *chatService) recordUserTurn(ctx context.Context, userId uuid.UUID, question string, assetRef *media.AssetRef) (*uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var assetId *uuid.UUID
	if assetRef != nil {
		if err := uow.Begin(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMediaProcessing, err)
		}

		asset := &entity.MediaAsset{
			Id:         uuid.New(),
			FileName:   assetRef.Name,
			FilePath:   assetRef.Path,
			OwnerId:    userId,
			UploadedAt: time.Now(),
		}
		if err := uow.MediaAssetRepository().Create(ctx, asset); err != nil {
			_ = uow.Rollback()
			return nil, fmt.Errorf("%w: %v", ErrMediaProcessing, err)
		}
		assetId = &asset.Id
	}

	userTurn := &entity.ChatTurn{
		Id:           uuid.New(),
		UserId:       userId,
		Role:         constant.ChatTurnRoleUser,
		Content:      question,
		MediaAssetId: assetId,
		CreatedAt:    time.Now(),
	}
	if err := uow.ChatTurnRepository().Create(ctx, userTurn); err != nil {
		if assetRef != nil {
			_ = uow.Rollback()
		}
		return nil, fmt.Errorf("append user turn: %w", err)
	}

	if assetRef != nil {
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("append user turn: %w", err)
		}
	}
	return assetId, nil
}

// invokeModel picks the instruction profile from asset presence alone and
// never fails: any provider error is downgraded to a reported reply so the
// conversation keeps its continuity.
func (s *chatService) invokeModel(ctx context.Context, question, imageB64, mimeType string) (string, bool) {
	callCtx, cancel := context.WithTimeout(ctx, s.modelTimeout)
	defer cancel()

	instruction := constant.TextOnlySystemInstructionV1
	request := llm.Request{Question: question}
	if imageB64 != "" {
		instruction = constant.MultimodalSystemInstructionV1
		request.ImageB64 = imageB64
		request.MimeType = mimeType
	}

	reply, err := s.provider.Ask(callCtx, request,
		llm.WithSystemInstruction(instruction),
		llm.WithTemperature(constant.ModelTemperatureV1),
		llm.WithMaxTokens(constant.ModelMaxOutputTokensV1),
	)
	if err != nil {
		s.logger.Warn("chat", "model invocation failed, serving degraded reply", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Sprintf("Error communicating with the AI model: %v", err), true
	}
	return reply, false
}

func (s *chatService) resolveUser(ctx context.Context, email string) (*entity.User, error) {
	if cached, found := s.userCache.Get(email); found {
		return cached.(*entity.User), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	s.userCache.SetDefault(email, user)
	return user, nil
}

func (s *chatService) userLock(userId uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[userId]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userId] = lock
	}
	return lock
}
